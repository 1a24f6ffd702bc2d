// Package logio turns multi-line output, such as a context dump, into one
// log call per line.
package logio

import (
	"bytes"
	"sync"
)

// Writer buffers writes and passes each completed line to Logf, after
// Prefix. It is safe for use from multiple goroutines.
type Writer struct {
	Logf   func(mess string, args ...interface{})
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.flushLines(false)
	return len(p), nil
}

// Close logs any final partial line.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.flushLines(true)
	return nil
}

func (lw *Writer) flushLines(all bool) {
	for lw.buf.Len() > 0 {
		line := lw.buf.Bytes()
		i := bytes.IndexByte(line, '\n')
		if i < 0 {
			if !all {
				return
			}
			i = len(line)
		}
		lw.Logf("%s%s", lw.Prefix, line[:i])
		lw.buf.Next(i)
		if lw.buf.Len() > 0 {
			lw.buf.Next(1)
		}
	}
}
