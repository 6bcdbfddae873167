package tokens

import (
	"github.com/iov-one/custody/errors"
)

// tokens reserves error codes 1040 ~ 1049.
var (
	// ErrNoValue is returned when a deposit carries no value.
	ErrNoValue = errors.Register(1040, "deposit without value")

	// ErrAllowance is returned when the engine is not approved to pull
	// the requested amount from the depositor.
	ErrAllowance = errors.Register(1041, "insufficient allowance")

	// ErrTransferFailed is returned when the token contract rejects the
	// transfer.
	ErrTransferFailed = errors.Register(1042, "token transfer failed")
)
