package txledger

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where we store the transactions.
	BucketName = "txs"
	// SequenceName is the auto-increment id counter for transactions.
	SequenceName = "id"
)

var cdc = amino.NewCodec()

// Transaction is a single transfer request. It is created pending and
// flips to executed at most once. Records are never deleted.
type Transaction struct {
	ID          uint64
	Destination custody.Address
	Value       uint64
	Payload     []byte
	Executed    bool
	Expiry      custody.UnixTime
}

var _ custody.Persistent = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

// Validate ensures the stored form is sound.
func (t *Transaction) Validate() error {
	if t.ID == 0 {
		return errors.Wrap(errors.ErrModel, "missing id")
	}
	if err := t.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := t.Expiry.Validate(); err != nil {
		return errors.Wrap(err, "expiry")
	}
	return nil
}

// Expired returns true if the request can no longer be executed at the
// given time. The deadline itself is still executable.
func (t *Transaction) Expired(now custody.UnixTime) bool {
	return now > t.Expiry
}

func txBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

func idSeq() orm.Sequence {
	return orm.NewSequence(BucketName, SequenceName)
}

func txKey(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}
