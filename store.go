package custody

// Defines all public interfaces for interacting with stores.
//
// KVStore is the basic object to use in all state-transition code. The
// cache-wrapping interfaces extend it with the grouping of temporary
// writes that may be committed or discarded together, which is how the
// engine reproduces the all-or-nothing semantics of its execution host.

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)
}

// SetDeleter is a subset of the KVStore methods that modify state.
type SetDeleter interface {
	Set(key, value []byte) error // CONTRACT: key, value readonly []byte
	Delete(key []byte) error     // CONTRACT: key readonly []byte
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Batch can write multiple operations to an underlying store. The writes
// are applied in one call and the batch is reset afterwards.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on
// cache-wraps makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data
// that we can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that can persist state to disk, load it on
// start up, and maintain some history.
type CommitKVStore interface {
	KVStore

	// Get a CacheWrap to perform actions.
	CacheWrap() KVCacheWrap

	// Commit the next version to disk, and returns info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version.
	// If there was a crash during the last commit, it is guaranteed
	// to return a stable state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() CommitID
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Persistent objects can be serialized to and from a byte representation
// for storage in a KVStore.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
