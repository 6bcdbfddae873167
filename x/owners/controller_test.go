package owners

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestInitialize(t *testing.T) {
	deployer := custodytest.NewAddress()
	other := custodytest.NewAddress()

	cases := map[string]struct {
		initial   []custody.Address
		maxOwners uint32
		required  uint32
		wantErr   *errors.Error
		wantLen   int
	}{
		"deployer only": {
			maxOwners: 10,
			required:  1,
			wantLen:   1,
		},
		"deployer plus one": {
			initial:   []custody.Address{other},
			maxOwners: 10,
			required:  2,
			wantLen:   2,
		},
		"requirement above owner count": {
			maxOwners: 10,
			required:  2,
			wantErr:   ErrRequirement,
		},
		"requirement of zero": {
			maxOwners: 10,
			required:  0,
			wantErr:   ErrRequirement,
		},
		"capacity too small": {
			initial:   []custody.Address{other},
			maxOwners: 1,
			required:  1,
			wantErr:   ErrCapacity,
		},
		"duplicate deployer": {
			initial:   []custody.Address{deployer},
			maxOwners: 10,
			required:  1,
			wantErr:   ErrRequirement,
		},
		"malformed owner address": {
			initial:   []custody.Address{{1, 2, 3}},
			maxOwners: 10,
			required:  1,
			wantErr:   ErrRequirement,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := custodytest.Store()
			set, err := Initialize(db, deployer, tc.maxOwners, tc.required, tc.initial)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantLen, len(set.Owners))
			// deployer is always owner #0
			assert.Equal(t, deployer, set.Owners[0])

			loaded, err := Load(db)
			assert.Nil(t, err)
			assert.Equal(t, set.Required, loaded.Required)
		})
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 10, 1, nil); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}
	if _, err := Initialize(db, deployer, 10, 1, nil); !errors.ErrState.Is(err) {
		t.Fatalf("second initialization must fail: %+v", err)
	}
}

func TestOnlyOwnerGate(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	stranger := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 10, 1, nil); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	if err := Add(db, stranger, custodytest.NewAddress()); !ErrOnlyOwner.Is(err) {
		t.Fatalf("stranger must not add owners: %+v", err)
	}
	if _, err := Remove(db, stranger, deployer); !ErrOnlyOwner.Is(err) {
		t.Fatalf("stranger must not remove owners: %+v", err)
	}
	if err := ChangeRequirement(db, stranger, 1); !ErrOnlyOwner.Is(err) {
		t.Fatalf("stranger must not change the requirement: %+v", err)
	}
}

func TestAdd(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	newcomer := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 2, 1, nil); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	assert.Nil(t, Add(db, deployer, newcomer))
	ok, err := IsOwner(db, newcomer)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	if err := Add(db, deployer, newcomer); !ErrOwnerExists.Is(err) {
		t.Fatalf("duplicate owner must be rejected: %+v", err)
	}
	if err := Add(db, deployer, custodytest.NewAddress()); !ErrCapacity.Is(err) {
		t.Fatalf("capacity must be enforced: %+v", err)
	}
}

func TestRemove(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	second := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 10, 2, []custody.Address{second}); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	// removal of one of two owners with a requirement of two must lower
	// the requirement to keep the invariant
	lowered, err := Remove(db, deployer, second)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), lowered)

	set, err := Load(db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), set.Required)
	assert.Equal(t, 1, len(set.Owners))

	if _, err := Remove(db, deployer, second); !ErrOwnerNotFound.Is(err) {
		t.Fatalf("removing an unknown owner must fail: %+v", err)
	}
	if _, err := Remove(db, deployer, deployer); !ErrLastOwner.Is(err) {
		t.Fatalf("removing the last owner must fail: %+v", err)
	}
}

func TestRemoveKeepsRequirement(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	second := custodytest.NewAddress()
	third := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 10, 2, []custody.Address{second, third}); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	lowered, err := Remove(db, deployer, third)
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), lowered)

	set, err := Load(db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), set.Required)
}

func TestReplace(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	second := custodytest.NewAddress()
	repl := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 2, 2, []custody.Address{second}); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	assert.Nil(t, Replace(db, deployer, second, repl))

	set, err := Load(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(set.Owners))
	assert.Equal(t, uint32(2), set.Required)
	assert.Equal(t, true, set.Contains(repl))
	assert.Equal(t, false, set.Contains(second))

	if err := Replace(db, deployer, second, custodytest.NewAddress()); !ErrOwnerNotFound.Is(err) {
		t.Fatalf("replacing an unknown owner must fail: %+v", err)
	}
	if err := Replace(db, deployer, repl, deployer); !ErrOwnerExists.Is(err) {
		t.Fatalf("replacing with an existing owner must fail: %+v", err)
	}
}

func TestChangeRequirement(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	second := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 10, 1, []custody.Address{second}); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	assert.Nil(t, ChangeRequirement(db, deployer, 2))
	set, err := Load(db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), set.Required)

	if err := ChangeRequirement(db, deployer, 3); !ErrRequirement.Is(err) {
		t.Fatalf("requirement above owner count must fail: %+v", err)
	}
	if err := ChangeRequirement(db, deployer, 0); !ErrRequirement.Is(err) {
		t.Fatalf("requirement of zero must fail: %+v", err)
	}
}

func TestUpdateMaxOwners(t *testing.T) {
	db := custodytest.Store()
	deployer := custodytest.NewAddress()
	second := custodytest.NewAddress()

	if _, err := Initialize(db, deployer, 2, 1, []custody.Address{second}); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	assert.Nil(t, UpdateMaxOwners(db, deployer, 5))
	if err := UpdateMaxOwners(db, deployer, 1); !ErrCapacity.Is(err) {
		t.Fatalf("capacity below owner count must fail: %+v", err)
	}
}
