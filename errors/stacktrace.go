package errors

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace attached to any error of the Cause
// chain, or nil if none of the layers carries one.
func stackTrace(err error) errors.StackTrace {
	for ; err != nil; err = cause(err) {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func cause(err error) error {
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}
