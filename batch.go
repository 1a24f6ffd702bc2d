package push

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/gopush/internal/logio"
	"github.com/jcorbin/gopush/internal/panicerr"
)

// Job is one program to run on its own context.
type Job struct {
	Name    string
	Context *Context
	Program Code
}

// Batch runs independent jobs concurrently, such as the fitness cases of a
// population. Every job must have a distinct Context.
type Batch struct {
	Workers  int // concurrent runs; non-positive means one per job
	Steps    int
	MaxDepth int

	Log commonlog.Logger
}

// Run returns each job's result by index. A job whose instructions panic
// fails the batch with an error naming it, and its context is dumped to Log
// at debug level; ctx cancellation stops jobs that have not yet started.
func (b Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		eg.SetLimit(b.Workers)
	}
	for i := range jobs {
		job := jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job %v", i)
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := panicerr.Recover(job.Name, func() error {
				defer job.Context.withLogPrefix(job.Name + ": ")()
				results[i] = job.Context.Run(job.Program, b.Steps, b.MaxDepth)
				return nil
			})
			if err != nil && b.Log != nil {
				b.Log.Errorf("%v", err)
				job.Context.Dump(&logio.Writer{Logf: b.Log.Debugf, Prefix: job.Name + ": "})
			}
			return err
		})
	}
	err := eg.Wait()
	if b.Log != nil && err == nil {
		b.Log.Debugf("ran %v jobs", len(jobs))
	}
	return results, err
}
