package tokens

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Deposit pulls approved funds from the depositor into the engine
// account and credits the tracked balance. The token contract is asked
// for the allowance first so a depositor gets a distinguishable error
// before the transfer is attempted.
func Deposit(db custody.KVStore, tc TokenContract, token, from, engine custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(ErrNoValue, "token deposit")
	}
	allowed, err := tc.Allowance(from, engine)
	if err != nil {
		return errors.Wrap(err, "allowance query")
	}
	if allowed < amount {
		return errors.Wrapf(ErrAllowance, "%d allowed, %d requested", allowed, amount)
	}
	ok, err := tc.TransferFrom(from, engine, amount)
	if err != nil {
		return errors.Wrap(err, "transfer from")
	}
	if !ok {
		return errors.Wrapf(ErrTransferFailed, "from %s", from)
	}

	bal, err := Get(db, from, token)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-bal.Amount {
		return errors.Wrap(errors.ErrOverflow, "deposit balance")
	}
	bal.Amount += amount
	return balanceBucket().Save(db, balanceKey(from, token), bal)
}

// Get returns the tracked balance of the holder in the given token. A
// missing record is a zero balance, not an error.
func Get(db custody.ReadOnlyKVStore, holder, token custody.Address) (*Balance, error) {
	bal := &Balance{
		Holder: holder,
		Token:  token,
	}
	if _, err := balanceBucket().Get(db, balanceKey(holder, token), bal); err != nil {
		return nil, err
	}
	return bal, nil
}
