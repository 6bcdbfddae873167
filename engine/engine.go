package engine

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/dailylimit"
	"github.com/iov-one/custody/x/owners"
	"github.com/iov-one/custody/x/sigcheck"
	"github.com/iov-one/custody/x/tokens"
	"github.com/iov-one/custody/x/txledger"
)

// Releaser performs the external value transfer of an executed
// transaction. The callback runs arbitrary destination code: it may
// fail and it may reenter the engine.
type Releaser interface {
	Release(dest custody.Address, value uint64, payload []byte) error
}

// Options configure an Engine. Zero values select sane defaults.
type Options struct {
	// Address the engine acts under when pulling token deposits.
	Address custody.Address
	// Logger for operational logging, nop when unset.
	Logger log.Logger
	// Sink receives events of committed operations.
	Sink custody.EventSink
	// Now is the host time source. Defaults to the wall clock.
	Now func() custody.UnixTime
}

// Engine is the shared-custody authorization engine. It exclusively
// owns all state in its store: the owner registry, the transaction
// ledger, the spending guard, the value pool and the token deposit
// balances.
type Engine struct {
	db       custody.CacheableKVStore
	releaser Releaser
	address  custody.Address
	logger   log.Logger
	sink     custody.EventSink
	now      func() custody.UnixTime
}

// NewEngine returns an engine operating on the given store. The
// releaser is the host callback that moves value out of the pool.
func NewEngine(db custody.CacheableKVStore, releaser Releaser, opts Options) *Engine {
	if opts.Address == nil {
		opts.Address = custody.NewCondition("custody", "engine", []byte("instance")).Address()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.Sink == nil {
		opts.Sink = custody.NopSink
	}
	if opts.Now == nil {
		opts.Now = func() custody.UnixTime { return custody.AsUnixTime(time.Now()) }
	}
	return &Engine{
		db:       db,
		releaser: releaser,
		address:  opts.Address,
		logger:   opts.Logger.With("module", "engine"),
		sink:     opts.Sink,
		now:      opts.Now,
	}
}

// Address returns the identity the engine acts under.
func (e *Engine) Address() custody.Address {
	return e.address
}

func (e *Engine) emit(ev custody.Event) {
	e.sink(ev)
}

// run executes fn against a cache-wrap and commits only on success.
func (e *Engine) run(fn func(db custody.KVStore) error) error {
	cache := e.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

// AddOwner registers a new owner. Caller must be a current owner.
func (e *Engine) AddOwner(caller, owner custody.Address) error {
	err := e.run(func(db custody.KVStore) error {
		return owners.Add(db, caller, owner)
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventOwnerAdded, custody.Pair("owner", owner)))
	return nil
}

// RemoveOwner drops an existing owner. When the removal forces the
// requirement down, a requirement-changed event fires as well.
func (e *Engine) RemoveOwner(caller, owner custody.Address) error {
	var lowered uint32
	err := e.run(func(db custody.KVStore) error {
		var err error
		lowered, err = owners.Remove(db, caller, owner)
		return err
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventOwnerRemoved, custody.Pair("owner", owner)))
	if lowered != 0 {
		e.emit(custody.NewEvent(EventRequirementChanged, custody.Pair("required", lowered)))
	}
	return nil
}

// ReplaceOwner swaps an existing owner for a new address.
func (e *Engine) ReplaceOwner(caller, old, repl custody.Address) error {
	err := e.run(func(db custody.KVStore) error {
		return owners.Replace(db, caller, old, repl)
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventOwnerReplaced,
		custody.Pair("old", old), custody.Pair("new", repl)))
	return nil
}

// ChangeRequirement updates the quorum size.
func (e *Engine) ChangeRequirement(caller custody.Address, required uint32) error {
	err := e.run(func(db custody.KVStore) error {
		return owners.ChangeRequirement(db, caller, required)
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventRequirementChanged, custody.Pair("required", required)))
	return nil
}

// UpdateMaxOwners changes the owner capacity.
func (e *Engine) UpdateMaxOwners(caller custody.Address, max uint32) error {
	err := e.run(func(db custody.KVStore) error {
		return owners.UpdateMaxOwners(db, caller, max)
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventMaxOwnersChanged, custody.Pair("max_owners", max)))
	return nil
}

// UpdateDailyLimit replaces the spending limit and restarts the window.
// Caller must be a current owner.
func (e *Engine) UpdateDailyLimit(caller custody.Address, limit uint64) error {
	now := e.now()
	err := e.run(func(db custody.KVStore) error {
		if err := gateOwner(db, caller); err != nil {
			return err
		}
		return dailylimit.UpdateLimit(db, limit, now)
	})
	if err != nil {
		return err
	}
	e.emit(custody.NewEvent(EventDailyLimitChanged, custody.Pair("limit", limit)))
	return nil
}

// DepositValue credits the engine-held pool. Anyone may deposit, but
// never nothing.
func (e *Engine) DepositValue(from custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(ErrNoValue, "value deposit")
	}
	err := e.run(func(db custody.KVStore) error {
		return creditPool(db, amount)
	})
	if err != nil {
		return err
	}
	e.logger.Info("value deposited", "from", from, "amount", amount)
	e.emit(custody.NewEvent(EventDeposit,
		custody.Pair("from", from), custody.Pair("amount", amount)))
	return nil
}

// DepositToken pulls approved funds from the depositor through the
// external token contract and records the deposit. Withdrawal of token
// deposits is out of scope, the ledger is deposit only.
func (e *Engine) DepositToken(tc tokens.TokenContract, token, from custody.Address, amount uint64) error {
	err := e.run(func(db custody.KVStore) error {
		return tokens.Deposit(db, tc, token, from, e.address, amount)
	})
	if err != nil {
		return err
	}
	e.logger.Info("token deposited", "token", token, "from", from, "amount", amount)
	e.emit(custody.NewEvent(EventTokenDeposit,
		custody.Pair("token", token),
		custody.Pair("from", from),
		custody.Pair("amount", amount)))
	return nil
}

// SubmitTransaction stores a new transfer request and returns its id.
// Caller must be a current owner and the expiry must be in the future.
func (e *Engine) SubmitTransaction(caller, dest custody.Address, value uint64, payload []byte, expiry custody.UnixTime) (uint64, error) {
	now := e.now()
	var id uint64
	err := e.run(func(db custody.KVStore) error {
		if err := gateOwner(db, caller); err != nil {
			return err
		}
		tx, err := txledger.Submit(db, dest, value, payload, expiry, now)
		if err != nil {
			return err
		}
		id = tx.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.logger.Info("transaction submitted", "id", id, "destination", dest, "value", value)
	e.emit(custody.NewEvent(EventSubmission,
		custody.Pair("id", id), custody.Pair("destination", dest)))
	return id, nil
}

// ExecuteTransaction verifies a quorum of signatures over the request
// digest and releases the value.
//
// The executed flag is committed before the release call runs so that a
// reentrant execution of the same id fails the already-executed check.
// When the release itself fails, the flag, the nonce increment, the
// spending debit and the pool debit are all compensated as one unit and
// the request can be retried. The compensation refuses to touch the
// nonce when the release callback advanced it through a reentrant
// execution, see compensate.
func (e *Engine) ExecuteTransaction(caller custody.Address, id uint64, sigs []*sigcheck.StdSignature) error {
	now := e.now()

	var (
		tx             *txledger.Transaction
		committedNonce int64
	)
	err := e.run(func(db custody.KVStore) error {
		set, err := owners.Load(db)
		if err != nil {
			return err
		}
		if !set.Contains(caller) {
			return errors.Wrapf(owners.ErrOnlyOwner, "caller %s", caller)
		}

		tx, err = txledger.Get(db, id)
		if err != nil {
			return err
		}
		if tx.Executed {
			return errors.Wrapf(txledger.ErrAlreadyExecuted, "transaction %d", id)
		}
		if tx.Expired(now) {
			return errors.Wrapf(errors.ErrExpired, "transaction %d expired at %d", id, tx.Expiry)
		}

		// Optimistic commit: the flag is set before the external
		// release so a reentrant call is rejected immediately.
		if _, err := txledger.MarkExecuted(db, id); err != nil {
			return err
		}

		if err := dailylimit.Authorize(db, tx.Value, now); err != nil {
			return err
		}

		seq := nonceSeq()
		nonce, _, err := seq.Latest(db)
		if err != nil {
			return err
		}
		digest := sigcheck.BuildDigest(tx.Destination, tx.Value, tx.Payload, uint64(nonce))
		_, err = sigcheck.VerifySignatures(digest, sigs, set.Required, set.Contains)
		if err != nil {
			return err
		}
		if committedNonce, err = seq.NextInt(db); err != nil {
			return err
		}

		return debitPool(db, tx.Value)
	})
	if err != nil {
		e.logger.Error("execution aborted", "id", id, "err", err)
		return err
	}

	// State is committed. From here on the request counts as executed
	// unless the release fails and we compensate.
	if err := e.releaser.Release(tx.Destination, tx.Value, tx.Payload); err != nil {
		if cerr := e.compensate(id, tx.Value, committedNonce); cerr != nil {
			// Either the replay counter moved under us or the store
			// misbehaves. Both leave the execution uncompensated and we
			// cannot hide that.
			e.logger.Error("compensation refused", "id", id, "err", cerr)
			return errors.Wrapf(cerr, "compensation after release failure: %s", err)
		}
		e.logger.Error("value release failed", "id", id, "err", err)
		e.emit(custody.NewEvent(EventExecutionFailure, custody.Pair("id", id)))
		return errors.Wrapf(ErrReleaseFailed, "transaction %d: %s", id, err)
	}

	e.logger.Info("transaction executed", "id", id, "destination", tx.Destination, "value", tx.Value)
	e.emit(custody.NewEvent(EventExecution, custody.Pair("id", id)))
	return nil
}

// compensate rolls back the committed effects of an execution whose
// value release failed: executed flag, nonce, spending debit and pool
// debit.
//
// The rollback is guarded: the sequence must still hold exactly the
// value the failed execution committed. A reentrant execution from
// inside the release callback may have consumed the next nonce, and
// decrementing past it would make that execution's signature set valid
// a second time. When the counter moved, no compensation happens at all
// and ErrNonceMoved reports the inconsistency.
func (e *Engine) compensate(id uint64, value uint64, nonce int64) error {
	return e.run(func(db custody.KVStore) error {
		seq := nonceSeq()
		latest, _, err := seq.Latest(db)
		if err != nil {
			return err
		}
		if latest != nonce {
			return errors.Wrapf(ErrNonceMoved, "%d committed, %d current", nonce, latest)
		}
		if err := txledger.Unmark(db, id); err != nil {
			return err
		}
		if _, err := seq.Rollback(db); err != nil {
			return err
		}
		if err := dailylimit.Credit(db, value); err != nil {
			return err
		}
		return creditPool(db, value)
	})
}

// gateOwner fails unless the caller is a current owner.
func gateOwner(db custody.ReadOnlyKVStore, caller custody.Address) error {
	ok, err := owners.IsOwner(db, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(owners.ErrOnlyOwner, "caller %s", caller)
	}
	return nil
}
