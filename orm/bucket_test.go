package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/store"
)

// counter is a minimal Persistent implementation for bucket tests.
type counter struct {
	val uint64
}

func (c *counter) Marshal() ([]byte, error) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, c.val)
	return bz, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	c.val = binary.BigEndian.Uint64(raw)
	return nil
}

func TestBucketRoundTrip(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("demo")

	if err := b.Save(db, []byte("one"), &counter{val: 42}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}

	var got counter
	ok, err := b.Get(db, []byte("one"), &got)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(42), got.val)

	ok, err = b.Get(db, []byte("other"), &got)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestBucketPrefixesDoNotCollide(t *testing.T) {
	db := store.MemStore()
	a := NewBucket("aaa")
	b := NewBucket("bbb")

	if err := a.Save(db, []byte("k"), &counter{val: 1}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}
	ok, err := b.Has(db, []byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("demo")

	if err := b.Save(db, []byte("k"), &counter{val: 1}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}
	if err := b.Delete(db, []byte("k")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	ok, err := b.Has(db, []byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestBucketRejectsBadName(t *testing.T) {
	assert.Panics(t, func() {
		NewBucket("Not A Valid Name")
	})
}
