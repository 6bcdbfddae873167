// Package iavl provides a CommitKVStore backed by an iavl merkle tree.
//
// This is the durable backend expected from the execution host: state
// survives restarts and every Commit produces a verifiable root hash.
// Cache-wrapping for per-operation atomicity is layered on top with the
// btree wrap from the store package.
package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// default cache size for the iavl tree nodes
const cacheSize = 10000

// CommitStore manages an iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing under the given
// directory. The name is used for the database file.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
	}, nil
}

// MockCommitStore returns a store with in-memory backing, for tests.
func MockCommitStore() *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize),
	}
}

// Get returns the value stored under the key, nil if missing.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks the existence of a key.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set updates the working tree. The change is not durable before Commit.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Commit the next version to disk, and returns info.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot save version")
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return errors.Wrap(err, "cannot load latest version")
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap gives us a savepoint to perform actions on top of the
// working tree.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, store.NewNonAtomicBatch(s), nil)
}
