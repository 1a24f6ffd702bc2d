// Package panicerr runs functions on their own goroutine, turning a panic or
// a runtime.Goexit into an ordinary error return.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f on a new goroutine and returns its error, or an error
// describing how f panicked or exited; name labels that error.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			select {
			case errch <- exitError(name):
			default:
				// f returned or panicked, and that was already sent
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- &Error{Name: name, Value: e, Stack: debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

// Error is a recovered panic.
type Error struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe *Error) Error() string { return fmt.Sprint(pe) }

// Format adds the panic stack under the %+v verb.
func (pe *Error) Format(f fmt.State, c rune) {
	if pe.Name == "" {
		fmt.Fprintf(f, "panicked: %v", pe.Value)
	} else {
		fmt.Fprintf(f, "%v panicked: %v", pe.Name, pe.Value)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsPanic reports whether err is, or wraps, a recovered panic.
func IsPanic(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// Stack returns the stack trace of a recovered panic, or "".
func Stack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit reports whether err is a recovered runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
