package engine

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x/dailylimit"
	"github.com/iov-one/custody/x/owners"
	"github.com/iov-one/custody/x/tokens"
	"github.com/iov-one/custody/x/txledger"
)

// Read-only queries. They operate on committed state only.

// Owners returns the current owner list in registry order.
func (e *Engine) Owners() ([]custody.Address, error) {
	set, err := owners.Load(e.db)
	if err != nil {
		return nil, err
	}
	return set.Owners, nil
}

// Requirement returns the current quorum size.
func (e *Engine) Requirement() (uint32, error) {
	set, err := owners.Load(e.db)
	if err != nil {
		return 0, err
	}
	return set.Required, nil
}

// Transaction returns a single request by id.
func (e *Engine) Transaction(id uint64) (*txledger.Transaction, error) {
	return txledger.Get(e.db, id)
}

// TransactionCount returns the number of requests matching the filter.
func (e *Engine) TransactionCount(pending, executed bool) (int, error) {
	return txledger.Count(e.db, pending, executed)
}

// TransactionIDs returns the [from, to) page of request ids matching
// the filter.
func (e *Engine) TransactionIDs(from, to int, pending, executed bool) ([]uint64, error) {
	return txledger.IDs(e.db, from, to, pending, executed)
}

// Balance returns the value held by the engine pool.
func (e *Engine) Balance() (uint64, error) {
	pool, err := loadPool(e.db)
	if err != nil {
		return 0, err
	}
	return pool.Funds, nil
}

// TokenBalance returns the tracked token deposit of a holder.
func (e *Engine) TokenBalance(holder, token custody.Address) (uint64, error) {
	bal, err := tokens.Get(e.db, holder, token)
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

// Nonce returns the current replay protection counter. Signatures for
// the next execution must be built over this value.
func (e *Engine) Nonce() (uint64, error) {
	seq := nonceSeq()
	nonce, _, err := seq.Latest(e.db)
	return uint64(nonce), err
}

// DailyLimit returns the current guard state without rolling the
// window.
func (e *Engine) DailyLimit() (*dailylimit.LimitState, error) {
	return dailylimit.Load(e.db)
}
