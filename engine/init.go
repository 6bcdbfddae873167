package engine

import (
	"encoding/json"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/dailylimit"
	"github.com/iov-one/custody/x/owners"
)

// GenesisOptions is the construction-time configuration of an engine
// instance. It is usually decoded from a genesis document provided by
// deployment tooling.
type GenesisOptions struct {
	Deployer   custody.Address   `json:"deployer"`
	MaxOwners  uint32            `json:"max_owners"`
	Required   uint32            `json:"required"`
	Owners     []custody.Address `json:"owners"`
	DailyLimit uint64            `json:"daily_limit"`
}

// FromGenesis decodes engine options from a raw genesis document.
func FromGenesis(raw []byte) (GenesisOptions, error) {
	var opts GenesisOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	return opts, nil
}

// Validate runs the construction-time checks that do not need store
// access. The full invariant is enforced again by the owner registry.
func (g GenesisOptions) Validate() error {
	if err := g.Deployer.Validate(); err != nil {
		return errors.Wrap(err, "deployer")
	}
	if g.Required < 1 {
		return errors.Wrap(owners.ErrRequirement, "required must be positive")
	}
	return nil
}

// Initialize seeds all engine state: the owner registry with the
// deployer as owner #0, the spending guard and an empty value pool.
// Construction is all or nothing, a failed initialization leaves no
// state behind.
func (e *Engine) Initialize(g GenesisOptions) error {
	if err := g.Validate(); err != nil {
		return err
	}
	now := e.now()
	err := e.run(func(db custody.KVStore) error {
		if _, err := owners.Initialize(db, g.Deployer, g.MaxOwners, g.Required, g.Owners); err != nil {
			return err
		}
		if err := dailylimit.Initialize(db, g.DailyLimit, now); err != nil {
			return err
		}
		return poolBucket().Save(db, poolKey, &Pool{Funds: 0})
	})
	if err != nil {
		return err
	}
	e.logger.Info("engine initialized",
		"owners", len(g.Owners)+1, "required", g.Required, "daily_limit", g.DailyLimit)
	e.emit(custody.NewEvent(EventInitialized,
		custody.Pair("owners", len(g.Owners)+1),
		custody.Pair("required", g.Required)))
	return nil
}
