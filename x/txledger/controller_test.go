package txledger

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestSubmit(t *testing.T) {
	now := custody.UnixTime(1000)
	dest := custodytest.NewAddress()

	cases := map[string]struct {
		dest    custody.Address
		expiry  custody.UnixTime
		wantErr *errors.Error
	}{
		"valid request": {
			dest:   dest,
			expiry: now + 60,
		},
		"missing destination": {
			dest:    nil,
			expiry:  now + 60,
			wantErr: errors.ErrEmpty,
		},
		"expiry in the past": {
			dest:    dest,
			expiry:  now - 1,
			wantErr: ErrExpiry,
		},
		"expiry right now": {
			dest:    dest,
			expiry:  now,
			wantErr: ErrExpiry,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := custodytest.Store()
			tx, err := Submit(db, tc.dest, 100, []byte("data"), tc.expiry, now)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, uint64(1), tx.ID)
			assert.Equal(t, false, tx.Executed)

			got, err := Get(db, tx.ID)
			assert.Nil(t, err)
			assert.Equal(t, tx, got)
		})
	}
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	db := custodytest.Store()
	now := custody.UnixTime(1000)

	for want := uint64(1); want <= 5; want++ {
		tx, err := Submit(db, custodytest.NewAddress(), want, nil, now+60, now)
		assert.Nil(t, err)
		assert.Equal(t, want, tx.ID)
	}
	latest, err := Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), latest)
}

func TestGetMissing(t *testing.T) {
	db := custodytest.Store()
	if _, err := Get(db, 42); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unknown id must not be found: %+v", err)
	}
}

func TestMarkExecuted(t *testing.T) {
	db := custodytest.Store()
	now := custody.UnixTime(1000)

	tx, err := Submit(db, custodytest.NewAddress(), 100, nil, now+60, now)
	assert.Nil(t, err)

	marked, err := MarkExecuted(db, tx.ID)
	assert.Nil(t, err)
	assert.Equal(t, true, marked.Executed)

	// marking is the idempotency guard, a second mark must fail
	if _, err := MarkExecuted(db, tx.ID); !ErrAlreadyExecuted.Is(err) {
		t.Fatalf("second mark must fail: %+v", err)
	}
}

func TestUnmark(t *testing.T) {
	db := custodytest.Store()
	now := custody.UnixTime(1000)

	tx, err := Submit(db, custodytest.NewAddress(), 100, nil, now+60, now)
	assert.Nil(t, err)

	if err := Unmark(db, tx.ID); !errors.ErrState.Is(err) {
		t.Fatalf("unmarking a pending transaction must fail: %+v", err)
	}

	if _, err := MarkExecuted(db, tx.ID); err != nil {
		t.Fatalf("cannot mark: %+v", err)
	}
	assert.Nil(t, Unmark(db, tx.ID))

	got, err := Get(db, tx.ID)
	assert.Nil(t, err)
	assert.Equal(t, false, got.Executed)

	// an unmarked transaction is executable again
	if _, err := MarkExecuted(db, tx.ID); err != nil {
		t.Fatalf("cannot mark again: %+v", err)
	}
}

func TestExpired(t *testing.T) {
	tx := Transaction{Expiry: 1000}
	assert.Equal(t, false, tx.Expired(999))
	assert.Equal(t, false, tx.Expired(1000))
	assert.Equal(t, true, tx.Expired(1001))
}

func TestCountAndIDs(t *testing.T) {
	db := custodytest.Store()
	now := custody.UnixTime(1000)

	for i := 0; i < 5; i++ {
		if _, err := Submit(db, custodytest.NewAddress(), 100, nil, now+60, now); err != nil {
			t.Fatalf("cannot submit: %+v", err)
		}
	}
	for _, id := range []uint64{2, 4} {
		if _, err := MarkExecuted(db, id); err != nil {
			t.Fatalf("cannot mark: %+v", err)
		}
	}

	cases := map[string]struct {
		pending  bool
		executed bool
		want     []uint64
	}{
		"pending only":  {pending: true, want: []uint64{1, 3, 5}},
		"executed only": {executed: true, want: []uint64{2, 4}},
		"both":          {pending: true, executed: true, want: []uint64{1, 2, 3, 4, 5}},
		"neither":       {want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			count, err := Count(db, tc.pending, tc.executed)
			assert.Nil(t, err)
			assert.Equal(t, len(tc.want), count)

			ids, err := IDs(db, 0, len(tc.want), tc.pending, tc.executed)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestIDsPagination(t *testing.T) {
	db := custodytest.Store()
	now := custody.UnixTime(1000)

	for i := 0; i < 4; i++ {
		if _, err := Submit(db, custodytest.NewAddress(), 100, nil, now+60, now); err != nil {
			t.Fatalf("cannot submit: %+v", err)
		}
	}

	ids, err := IDs(db, 1, 3, true, false)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{2, 3}, ids)

	// bounds are validated, not clamped
	if _, err := IDs(db, 0, 5, true, false); !ErrRange.Is(err) {
		t.Fatalf("out of range page must fail: %+v", err)
	}
	if _, err := IDs(db, 3, 2, true, false); !ErrRange.Is(err) {
		t.Fatalf("inverted page must fail: %+v", err)
	}
	if _, err := IDs(db, -1, 2, true, false); !ErrRange.Is(err) {
		t.Fatalf("negative page start must fail: %+v", err)
	}
}
