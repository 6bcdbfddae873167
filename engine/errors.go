package engine

import (
	"github.com/iov-one/custody/errors"
)

// engine reserves error codes 1050 ~ 1059.
var (
	// ErrReleaseFailed is returned when the destination rejected the
	// released value. The request stays pending and can be retried.
	ErrReleaseFailed = errors.Register(1050, "value release failed")

	// ErrInsufficientFunds is returned when the pool does not hold the
	// value a transaction wants to release.
	ErrInsufficientFunds = errors.Register(1051, "insufficient pool funds")

	// ErrNoValue is returned when a value deposit carries no value.
	ErrNoValue = errors.Register(1052, "deposit without value")

	// ErrNonceMoved is returned when a compensation finds the replay
	// counter advanced past the value the failed execution committed.
	// Rolling back anyway would revalidate an already used signature
	// set.
	ErrNonceMoved = errors.Register(1053, "replay counter moved")
)
