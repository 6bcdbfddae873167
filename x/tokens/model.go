package tokens

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the deposit balances.
const BucketName = "tokens"

var cdc = amino.NewCodec()

// TokenContract is the external fungible-asset interface the deposit
// path consumes. It is provided by the host, never implemented here.
type TokenContract interface {
	BalanceOf(holder custody.Address) (uint64, error)
	Allowance(owner, spender custody.Address) (uint64, error)
	TransferFrom(from, to custody.Address, amount uint64) (bool, error)
}

// Balance is the running deposit of one holder in one token.
type Balance struct {
	Holder custody.Address
	Token  custody.Address
	Amount uint64
}

var _ custody.Persistent = (*Balance)(nil)

func (b *Balance) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *Balance) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, b)
}

func balanceBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// balanceKey is the nested mapping key: holder first, token second.
func balanceKey(holder, token custody.Address) []byte {
	key := make([]byte, 0, len(holder)+len(token))
	key = append(key, holder...)
	return append(key, token...)
}
