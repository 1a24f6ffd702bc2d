package push

import (
	"math/rand"

	"github.com/tliron/commonlog"
)

// ContextOption configures a Context.
type ContextOption interface{ apply(c *Context) }

var defaultContextOptions = []ContextOption{
	WithSeed(1),
}

func (c *Context) apply(opts ...ContextOption) {
	for _, opt := range defaultContextOptions {
		opt.apply(c)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

type withLogfn func(mess string, args ...interface{})
type seedOption int64
type randOption struct{ *rand.Rand }
type stateOption struct{ state interface{} }

// WithLogf traces execution through a printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) ContextOption {
	return withLogfn(logfn)
}

// WithLogger traces execution at debug level on a commonlog logger.
func WithLogger(log commonlog.Logger) ContextOption {
	return withLogfn(func(mess string, args ...interface{}) {
		log.Debugf(mess, args...)
	})
}

// WithSeed gives the context its own deterministic entropy source.
func WithSeed(seed int64) ContextOption { return seedOption(seed) }

// WithRand uses rnd as the entropy source; it must not be shared with
// another concurrently running context.
func WithRand(rnd *rand.Rand) ContextOption { return randOption{rnd} }

// WithState sets Context.State.
func WithState(state interface{}) ContextOption { return stateOption{state} }

func (logfn withLogfn) apply(c *Context) { c.logfn = logfn }
func (seed seedOption) apply(c *Context) { c.rnd = rand.New(rand.NewSource(int64(seed))) }
func (o randOption) apply(c *Context)    { c.rnd = o.Rand }
func (o stateOption) apply(c *Context)   { c.State = o.state }
