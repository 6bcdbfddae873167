package txledger

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Submit stores a new pending transfer request and returns it with the
// next sequential id assigned. Owner gating belongs to the engine, the
// ledger only guards its own invariants.
func Submit(db custody.KVStore, dest custody.Address, value uint64, payload []byte, expiry, now custody.UnixTime) (*Transaction, error) {
	if err := dest.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrEmpty, "destination address")
	}
	if expiry <= now {
		return nil, errors.Wrapf(ErrExpiry, "expiry %d not after %d", expiry, now)
	}

	seq := idSeq()
	id, err := seq.NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "id sequence")
	}
	tx := &Transaction{
		ID:          uint64(id),
		Destination: dest,
		Value:       value,
		Payload:     payload,
		Executed:    false,
		Expiry:      expiry,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if err := txBucket().Save(db, txKey(tx.ID), tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Get returns the transaction stored under the id.
func Get(db custody.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var tx Transaction
	switch ok, err := txBucket().Get(db, txKey(id), &tx); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", id)
	}
	return &tx, nil
}

// MarkExecuted flips the executed flag of a pending transaction. It is
// the idempotency guard of the whole engine: a transaction that is
// already marked cannot be marked again.
func MarkExecuted(db custody.KVStore, id uint64) (*Transaction, error) {
	tx, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	tx.Executed = true
	if err := txBucket().Save(db, txKey(id), tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Unmark clears the executed flag again. It exists only to compensate a
// failed value release after the optimistic mark was committed. Never
// call it from anywhere else.
func Unmark(db custody.KVStore, id uint64) error {
	tx, err := Get(db, id)
	if err != nil {
		return err
	}
	if !tx.Executed {
		return errors.Wrapf(errors.ErrState, "transaction %d not executed", id)
	}
	tx.Executed = false
	return txBucket().Save(db, txKey(id), tx)
}

// Latest returns the id of the most recently submitted transaction,
// zero when the ledger is empty.
func Latest(db custody.ReadOnlyKVStore) (uint64, error) {
	seq := idSeq()
	id, _, err := seq.Latest(db)
	return uint64(id), err
}

// Count returns the number of transactions matching the filter.
func Count(db custody.ReadOnlyKVStore, pending, executed bool) (int, error) {
	last, err := Latest(db)
	if err != nil {
		return 0, err
	}
	var count int
	for id := uint64(1); id <= last; id++ {
		tx, err := Get(db, id)
		if err != nil {
			return 0, err
		}
		if matches(tx, pending, executed) {
			count++
		}
	}
	return count, nil
}

// IDs returns the [from, to) page of transaction ids matching the
// filter. Bounds are validated: from <= to <= matching count must hold.
func IDs(db custody.ReadOnlyKVStore, from, to int, pending, executed bool) ([]uint64, error) {
	if from < 0 || to < from {
		return nil, errors.Wrapf(ErrRange, "from %d, to %d", from, to)
	}
	last, err := Latest(db)
	if err != nil {
		return nil, err
	}
	var matching []uint64
	for id := uint64(1); id <= last; id++ {
		tx, err := Get(db, id)
		if err != nil {
			return nil, err
		}
		if matches(tx, pending, executed) {
			matching = append(matching, id)
		}
	}
	if to > len(matching) {
		return nil, errors.Wrapf(ErrRange, "to %d, %d matching", to, len(matching))
	}
	return matching[from:to], nil
}

func matches(tx *Transaction, pending, executed bool) bool {
	if tx.Executed {
		return executed
	}
	return pending
}
