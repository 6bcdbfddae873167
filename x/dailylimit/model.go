package dailylimit

import (
	"time"

	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// BucketName is where we store the limit state.
const BucketName = "dlimit"

// ResetInterval is the length of the spending window.
const ResetInterval = 24 * time.Hour

var stateKey = []byte("state")

var cdc = amino.NewCodec()

// LimitState is the complete guard state.
type LimitState struct {
	DailyLimit uint64
	SpentToday uint64
	LastReset  custody.UnixTime
}

var _ custody.Persistent = (*LimitState)(nil)

func (l *LimitState) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(l)
}

func (l *LimitState) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, l)
}

// Validate ensures the guard invariant holds.
func (l *LimitState) Validate() error {
	if l.SpentToday > l.DailyLimit {
		return errors.Wrapf(errors.ErrModel, "spent %d over limit %d", l.SpentToday, l.DailyLimit)
	}
	return l.LastReset.Validate()
}
