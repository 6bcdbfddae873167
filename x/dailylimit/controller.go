package dailylimit

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

func stateBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// Initialize seeds the guard with the given limit. The window starts at
// now with nothing spent.
func Initialize(db custody.KVStore, limit uint64, now custody.UnixTime) error {
	state := &LimitState{
		DailyLimit: limit,
		SpentToday: 0,
		LastReset:  now,
	}
	return stateBucket().Save(db, stateKey, state)
}

// Load returns the current guard state without rolling the window.
func Load(db custody.ReadOnlyKVStore) (*LimitState, error) {
	var state LimitState
	switch ok, err := stateBucket().Get(db, stateKey, &state); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrap(errors.ErrNotFound, "limit state")
	}
	return &state, nil
}

// Authorize debits the amount from the current window. The window is
// rolled forward first when at least 24 hours passed since the last
// reset. Check and debit are one step, a successful return means the
// spending is already recorded.
func Authorize(db custody.KVStore, amount uint64, now custody.UnixTime) error {
	state, err := Load(db)
	if err != nil {
		return err
	}
	if now >= state.LastReset.Add(ResetInterval) {
		state.SpentToday = 0
		state.LastReset = now
	}
	if amount > math.MaxUint64-state.SpentToday {
		return errors.Wrap(errors.ErrOverflow, "window spending")
	}
	if state.SpentToday+amount > state.DailyLimit {
		return errors.Wrapf(ErrDailyLimit, "%d spent, %d requested, %d allowed",
			state.SpentToday, amount, state.DailyLimit)
	}
	state.SpentToday += amount
	return stateBucket().Save(db, stateKey, state)
}

// Credit returns previously authorized spending to the window. It
// compensates a release that failed after the debit was committed. The
// credit saturates at zero, a window reset in between must not turn
// into negative spending.
func Credit(db custody.KVStore, amount uint64) error {
	state, err := Load(db)
	if err != nil {
		return err
	}
	if amount > state.SpentToday {
		state.SpentToday = 0
	} else {
		state.SpentToday -= amount
	}
	return stateBucket().Save(db, stateKey, state)
}

// UpdateLimit replaces the limit and restarts the window. Spending
// recorded so far is forgotten.
func UpdateLimit(db custody.KVStore, limit uint64, now custody.UnixTime) error {
	return Initialize(db, limit, now)
}
