package txledger

import (
	"github.com/iov-one/custody/errors"
)

// txledger reserves error codes 1010 ~ 1019.
var (
	// ErrAlreadyExecuted is returned when marking a transaction that
	// was executed before. This is the reentrancy and double-spend
	// guard, do not weaken it.
	ErrAlreadyExecuted = errors.Register(1010, "transaction already executed")

	// ErrExpiry is returned when submitting with a deadline that is not
	// in the future.
	ErrExpiry = errors.Register(1011, "invalid expiry timestamp")

	// ErrRange is returned for an out of bounds pagination request.
	ErrRange = errors.Register(1012, "pagination range out of bounds")
)
