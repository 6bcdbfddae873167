package custodytest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/store/iavl"
)

// NewKey returns a fresh random signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// KeyFromSeed returns a deterministic signer. The same seed byte always
// produces the same key, which keeps test fixtures stable.
func KeyFromSeed(seed byte) crypto.Signer {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed
	}
	return crypto.PrivKeyEd25519FromSeed(raw)
}

// NewCondition returns the condition of a fresh random key.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh random key.
func NewAddress() custody.Address {
	return NewCondition().Address()
}

// Store returns an empty in-memory cacheable store.
func Store() custody.CacheableKVStore {
	return store.MemStore()
}

// CommitKVStore returns a store instance that is using a filesystem
// backend to store the data. Use instead of Store when you want the
// exact same storage implementation as a production instance.
func CommitKVStore(t testing.TB) (db custody.CommitKVStore, cleanup func()) {
	t.Helper()

	dbpath, err := ioutil.TempDir("", "custodytest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	cs, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot create a commit store: %s", err)
	}
	return cs, func() { os.RemoveAll(dbpath) }
}
