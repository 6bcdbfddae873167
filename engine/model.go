package engine

import (
	"math"

	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// poolBucketName is where we store the engine-held value pool.
	poolBucketName = "pool"
	// nonceSequenceName is the global replay protection counter,
	// incremented exactly once per successful execution.
	nonceSequenceName = "nonce"
)

var poolKey = []byte("funds")

var cdc = amino.NewCodec()

// Pool is the native value held by the engine.
type Pool struct {
	Funds uint64
}

var _ custody.Persistent = (*Pool)(nil)

func (p *Pool) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Pool) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func poolBucket() orm.Bucket {
	return orm.NewBucket(poolBucketName)
}

func nonceSeq() orm.Sequence {
	return orm.NewSequence(poolBucketName, nonceSequenceName)
}

func loadPool(db custody.ReadOnlyKVStore) (*Pool, error) {
	var pool Pool
	if _, err := poolBucket().Get(db, poolKey, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func creditPool(db custody.KVStore, amount uint64) error {
	pool, err := loadPool(db)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-pool.Funds {
		return errors.Wrap(errors.ErrOverflow, "pool funds")
	}
	pool.Funds += amount
	return poolBucket().Save(db, poolKey, pool)
}

func debitPool(db custody.KVStore, amount uint64) error {
	pool, err := loadPool(db)
	if err != nil {
		return err
	}
	if pool.Funds < amount {
		return errors.Wrapf(ErrInsufficientFunds, "%d held, %d requested", pool.Funds, amount)
	}
	pool.Funds -= amount
	return poolBucket().Save(db, poolKey, pool)
}
