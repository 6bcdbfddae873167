package owners

import (
	"github.com/iov-one/custody/errors"
)

// owners reserves error codes 1000 ~ 1009.
var (
	// ErrOnlyOwner is returned when a caller that is not a current
	// owner invokes a gated operation.
	ErrOnlyOwner = errors.Register(1000, "caller is not an owner")

	// ErrOwnerExists is returned when adding an address that already is
	// an owner.
	ErrOwnerExists = errors.Register(1001, "owner already exists")

	// ErrOwnerNotFound is returned when operating on an address that is
	// not an owner.
	ErrOwnerNotFound = errors.Register(1002, "owner does not exist")

	// ErrRequirement is returned for any owner/requirement/capacity
	// combination that violates the registry invariant.
	ErrRequirement = errors.Register(1003, "invalid requirement")

	// ErrCapacity is returned when the owner capacity would be exceeded.
	ErrCapacity = errors.Register(1004, "owner capacity exceeded")

	// ErrLastOwner is returned on an attempt to remove the only owner.
	ErrLastOwner = errors.Register(1005, "cannot remove the last owner")
)
