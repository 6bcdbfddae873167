package sigcheck

import (
	"github.com/iov-one/custody/errors"
)

// sigcheck reserves error codes 1020 ~ 1029.
var (
	// ErrSignatureCount is returned when the number of supplied
	// signature records differs from the quorum requirement.
	ErrSignatureCount = errors.Register(1020, "signature count mismatch")

	// ErrUnauthorizedSigner is returned when a signature does not
	// verify or its recovered identity is not a current owner.
	ErrUnauthorizedSigner = errors.Register(1021, "unauthorized signer")

	// ErrDuplicateSigner is returned when two signature records resolve
	// to the same owner.
	ErrDuplicateSigner = errors.Register(1022, "duplicate signer")
)
