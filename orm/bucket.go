package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data under a common key prefix.
//
// This is a generic building block that should generally be embedded in
// a type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get loads the record stored under the key into dest. It returns false
// without touching dest when there is no value for that key.
func (b Bucket) Get(db custody.ReadOnlyKVStore, key []byte, dest custody.Persistent) (bool, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "bucket get")
	}
	if raw == nil {
		return false, nil
	}
	if err := dest.Unmarshal(raw); err != nil {
		return false, errors.Wrapf(errors.ErrModel, "unmarshal %q record: %v", b.name, err)
	}
	return true, nil
}

// Has checks the existence of a record without deserializing it.
func (b Bucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Save persists the given record under the key.
func (b Bucket) Save(db custody.KVStore, key []byte, m custody.Persistent) error {
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %q record: %v", b.name, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the record stored under the key, if any.
func (b Bucket) Delete(db custody.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Sequence returns a sequence counter scoped to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
