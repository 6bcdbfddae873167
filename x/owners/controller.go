package owners

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Place actual business logic here. Anything that may be called from the
// engine is public. The registry is stored as a single record, so every
// operation is load, gate on the caller, mutate, validate, save.

func setBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// Initialize seeds the registry. The deployer always becomes owner #0.
// It fails when a registry already exists or when the initial
// configuration violates the invariant.
func Initialize(db custody.KVStore, deployer custody.Address, maxOwners, required uint32, initial []custody.Address) (*OwnerSet, error) {
	b := setBucket()
	switch ok, err := b.Has(db, ownerSetKey); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrap(errors.ErrState, "registry already initialized")
	}

	set := &OwnerSet{
		Owners:    append([]custody.Address{deployer}, initial...),
		Required:  required,
		MaxOwners: maxOwners,
	}
	if err := set.Validate(); err != nil {
		// Any construction time issue is a requirement error so that
		// deployment tooling can tell it apart from runtime failures.
		if errors.ErrDuplicate.Is(err) || errors.ErrModel.Is(err) ||
			errors.ErrEmpty.Is(err) || errors.ErrInput.Is(err) {
			return nil, errors.Wrap(ErrRequirement, err.Error())
		}
		return nil, err
	}
	if err := b.Save(db, ownerSetKey, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Load returns the current owner set.
func Load(db custody.ReadOnlyKVStore) (*OwnerSet, error) {
	var set OwnerSet
	switch ok, err := setBucket().Get(db, ownerSetKey, &set); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrap(errors.ErrNotFound, "owner registry")
	}
	return &set, nil
}

// IsOwner returns true if the given address is a current owner.
func IsOwner(db custody.ReadOnlyKVStore, a custody.Address) (bool, error) {
	set, err := Load(db)
	if err != nil {
		return false, err
	}
	return set.Contains(a), nil
}

// gate loads the owner set and ensures the caller belongs to it.
func gate(db custody.ReadOnlyKVStore, caller custody.Address) (*OwnerSet, error) {
	set, err := Load(db)
	if err != nil {
		return nil, err
	}
	if !set.Contains(caller) {
		return nil, errors.Wrapf(ErrOnlyOwner, "caller %s", caller)
	}
	return set, nil
}

// Add registers a new owner.
func Add(db custody.KVStore, caller, owner custody.Address) error {
	set, err := gate(db, caller)
	if err != nil {
		return err
	}
	if err := set.add(owner); err != nil {
		return err
	}
	if err := set.Validate(); err != nil {
		return err
	}
	return setBucket().Save(db, ownerSetKey, set)
}

// Remove drops an existing owner. When the removal forces the
// requirement down it returns the new requirement value, otherwise zero.
func Remove(db custody.KVStore, caller, owner custody.Address) (uint32, error) {
	set, err := gate(db, caller)
	if err != nil {
		return 0, err
	}
	lowered, err := set.remove(owner)
	if err != nil {
		return 0, err
	}
	if err := set.Validate(); err != nil {
		return 0, err
	}
	return lowered, setBucket().Save(db, ownerSetKey, set)
}

// Replace swaps an existing owner for a new address. Owner count and
// requirement are preserved.
func Replace(db custody.KVStore, caller, old, repl custody.Address) error {
	set, err := gate(db, caller)
	if err != nil {
		return err
	}
	if err := set.replace(old, repl); err != nil {
		return err
	}
	if err := set.Validate(); err != nil {
		return err
	}
	return setBucket().Save(db, ownerSetKey, set)
}

// ChangeRequirement updates the quorum size.
func ChangeRequirement(db custody.KVStore, caller custody.Address, required uint32) error {
	set, err := gate(db, caller)
	if err != nil {
		return err
	}
	if required < 1 || required > uint32(len(set.Owners)) {
		return errors.Wrapf(ErrRequirement, "required %d of %d owners", required, len(set.Owners))
	}
	set.Required = required
	return setBucket().Save(db, ownerSetKey, set)
}

// UpdateMaxOwners changes the owner capacity. The new capacity cannot be
// below the current owner count.
func UpdateMaxOwners(db custody.KVStore, caller custody.Address, max uint32) error {
	set, err := gate(db, caller)
	if err != nil {
		return err
	}
	if max < uint32(len(set.Owners)) {
		return errors.Wrapf(ErrCapacity, "capacity %d below %d owners", max, len(set.Owners))
	}
	set.MaxOwners = max
	return setBucket().Save(db, ownerSetKey, set)
}
