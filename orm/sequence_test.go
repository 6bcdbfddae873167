package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/store"
)

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("demo", "id")

	var prev []byte
	for i := int64(1); i <= 10; i++ {
		val, err := seq.NextInt(db)
		if err != nil {
			t.Fatalf("cannot acquire value: %+v", err)
		}
		if val != i {
			t.Fatalf("want %d, got %d", i, val)
		}
		bz := EncodeSequence(val)
		if prev != nil && bytes.Compare(prev, bz) >= 0 {
			t.Fatalf("byte representation did not grow: %x >= %x", prev, bz)
		}
		prev = bz
	}
}

func TestSequenceLatest(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("demo", "id")

	val, _, err := seq.Latest(db)
	if err != nil {
		t.Fatalf("cannot read latest: %+v", err)
	}
	if val != 0 {
		t.Fatalf("empty sequence must be zero, got %d", val)
	}

	if _, err := seq.NextInt(db); err != nil {
		t.Fatalf("cannot acquire value: %+v", err)
	}
	// Latest must not modify the counter
	for i := 0; i < 3; i++ {
		val, _, err := seq.Latest(db)
		if err != nil {
			t.Fatalf("cannot read latest: %+v", err)
		}
		if val != 1 {
			t.Fatalf("want 1, got %d", val)
		}
	}
}

func TestSequenceRollback(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("demo", "id")

	for i := 0; i < 3; i++ {
		if _, err := seq.NextInt(db); err != nil {
			t.Fatalf("cannot acquire value: %+v", err)
		}
	}
	val, err := seq.Rollback(db)
	if err != nil {
		t.Fatalf("cannot rollback: %+v", err)
	}
	if val != 2 {
		t.Fatalf("want 2, got %d", val)
	}
	// next acquired value must be 3 again
	val, err = seq.NextInt(db)
	if err != nil {
		t.Fatalf("cannot acquire value: %+v", err)
	}
	if val != 3 {
		t.Fatalf("want 3, got %d", val)
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("demo", "a")
	b := NewSequence("demo", "b")

	if _, err := a.NextInt(db); err != nil {
		t.Fatalf("cannot acquire value: %+v", err)
	}
	val, _, err := b.Latest(db)
	if err != nil {
		t.Fatalf("cannot read latest: %+v", err)
	}
	if val != 0 {
		t.Fatalf("sequences must not share state, got %d", val)
	}
}
