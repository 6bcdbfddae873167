package owners

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// BucketName is where we store the owner set.
const BucketName = "owners"

// ownerSetKey is the key of the singleton OwnerSet record.
var ownerSetKey = []byte("set")

var cdc = amino.NewCodec()

// OwnerSet is the complete registry state: the ordered owner list, the
// quorum requirement and the capacity bound.
type OwnerSet struct {
	Owners    []custody.Address
	Required  uint32
	MaxOwners uint32
}

var _ custody.Persistent = (*OwnerSet)(nil)

func (s *OwnerSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *OwnerSet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Validate enforces the registry invariant. It must hold before and
// after every mutation.
func (s *OwnerSet) Validate() error {
	n := uint32(len(s.Owners))
	if n == 0 {
		return errors.Wrap(errors.ErrModel, "no owners")
	}
	if s.Required < 1 || s.Required > n {
		return errors.Wrapf(ErrRequirement, "required %d of %d owners", s.Required, n)
	}
	if n > s.MaxOwners {
		return errors.Wrapf(ErrCapacity, "%d owners, capacity %d", n, s.MaxOwners)
	}
	seen := make(map[string]struct{}, n)
	for i, o := range s.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner #%d", i)
		}
		if _, ok := seen[string(o)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "owner %s", o)
		}
		seen[string(o)] = struct{}{}
	}
	return nil
}

// index returns a constant-time membership lookup for the owner list.
func (s *OwnerSet) index() map[string]int {
	idx := make(map[string]int, len(s.Owners))
	for i, o := range s.Owners {
		idx[string(o)] = i
	}
	return idx
}

// Contains returns true if the address is a current owner.
func (s *OwnerSet) Contains(a custody.Address) bool {
	_, ok := s.index()[string(a)]
	return ok
}

// add appends a new owner. Capacity and duplicates are checked before
// any mutation happens.
func (s *OwnerSet) add(o custody.Address) error {
	if err := o.Validate(); err != nil {
		return errors.Wrap(errors.ErrEmpty, "owner address")
	}
	if s.Contains(o) {
		return errors.Wrapf(ErrOwnerExists, "owner %s", o)
	}
	if uint32(len(s.Owners))+1 > s.MaxOwners {
		return errors.Wrapf(ErrCapacity, "capacity %d", s.MaxOwners)
	}
	s.Owners = append(s.Owners, o)
	return nil
}

// remove drops an owner by swapping with the last entry. Order is not
// preserved. It returns the new requirement value when the removal
// forced it down, zero otherwise.
func (s *OwnerSet) remove(o custody.Address) (uint32, error) {
	i, ok := s.index()[string(o)]
	if !ok {
		return 0, errors.Wrapf(ErrOwnerNotFound, "owner %s", o)
	}
	if len(s.Owners) == 1 {
		return 0, ErrLastOwner.New("cannot remove the last owner")
	}
	last := len(s.Owners) - 1
	s.Owners[i] = s.Owners[last]
	s.Owners = s.Owners[:last]

	// The requirement can only shrink here, never grow.
	if n := uint32(len(s.Owners)); s.Required > n {
		s.Required = n
		return n, nil
	}
	return 0, nil
}

// replace swaps an existing owner for a new one, preserving both the
// owner count and the requirement.
func (s *OwnerSet) replace(old, repl custody.Address) error {
	if err := repl.Validate(); err != nil {
		return errors.Wrap(errors.ErrEmpty, "replacement address")
	}
	idx := s.index()
	i, ok := idx[string(old)]
	if !ok {
		return errors.Wrapf(ErrOwnerNotFound, "owner %s", old)
	}
	if _, ok := idx[string(repl)]; ok {
		return errors.Wrapf(ErrOwnerExists, "owner %s", repl)
	}
	s.Owners[i] = repl
	return nil
}

