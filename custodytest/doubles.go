package custodytest

import (
	"github.com/iov-one/custody"
)

// Releaser is a controllable engine.Releaser double.
type Releaser struct {
	// Err is returned by every Release call when set.
	Err error
	// Hook runs on every Release call when set, before Err is
	// considered. Use it to simulate reentrant destinations.
	Hook func(dest custody.Address, value uint64, payload []byte)
	// Calls records every release request.
	Calls []ReleaseCall
}

// ReleaseCall is the record of one release request.
type ReleaseCall struct {
	Dest    custody.Address
	Value   uint64
	Payload []byte
}

func (r *Releaser) Release(dest custody.Address, value uint64, payload []byte) error {
	r.Calls = append(r.Calls, ReleaseCall{Dest: dest, Value: value, Payload: payload})
	if r.Hook != nil {
		r.Hook(dest, value, payload)
	}
	return r.Err
}

// TokenContract is a controllable tokens.TokenContract double backed by
// plain maps.
type TokenContract struct {
	Balances   map[string]uint64
	Allowances map[string]uint64
	// FailTransfer makes TransferFrom report failure without error.
	FailTransfer bool
}

// NewTokenContract returns an empty token contract double.
func NewTokenContract() *TokenContract {
	return &TokenContract{
		Balances:   make(map[string]uint64),
		Allowances: make(map[string]uint64),
	}
}

// Approve sets the allowance of a spender on behalf of an owner.
func (c *TokenContract) Approve(owner, spender custody.Address, amount uint64) {
	c.Allowances[string(owner)+"/"+string(spender)] = amount
}

// SetBalance seeds a holder balance.
func (c *TokenContract) SetBalance(holder custody.Address, amount uint64) {
	c.Balances[string(holder)] = amount
}

func (c *TokenContract) BalanceOf(holder custody.Address) (uint64, error) {
	return c.Balances[string(holder)], nil
}

func (c *TokenContract) Allowance(owner, spender custody.Address) (uint64, error) {
	return c.Allowances[string(owner)+"/"+string(spender)], nil
}

func (c *TokenContract) TransferFrom(from, to custody.Address, amount uint64) (bool, error) {
	if c.FailTransfer {
		return false, nil
	}
	key := string(from)
	akey := string(from) + "/" + string(to)
	if c.Balances[key] < amount || c.Allowances[akey] < amount {
		return false, nil
	}
	c.Balances[key] -= amount
	c.Balances[string(to)] += amount
	c.Allowances[akey] -= amount
	return true, nil
}
