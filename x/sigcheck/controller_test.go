package sigcheck

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
)

func TestBuildDigestDeterministic(t *testing.T) {
	dest := custodytest.NewAddress()
	a := BuildDigest(dest, 100, []byte("data"), 7)
	b := BuildDigest(dest, 100, []byte("data"), 7)
	assert.Equal(t, a, b)
	assert.Equal(t, 32, len(a))
}

func TestBuildDigestBindsAllFields(t *testing.T) {
	dest := custodytest.NewAddress()
	base := BuildDigest(dest, 100, []byte("data"), 7)

	cases := map[string][]byte{
		"different destination": BuildDigest(custodytest.NewAddress(), 100, []byte("data"), 7),
		"different value":       BuildDigest(dest, 101, []byte("data"), 7),
		"different payload":     BuildDigest(dest, 100, []byte("tata"), 7),
		"different nonce":       BuildDigest(dest, 100, []byte("data"), 8),
		"empty payload":         BuildDigest(dest, 100, nil, 7),
	}
	for testName, digest := range cases {
		t.Run(testName, func(t *testing.T) {
			if bytes.Equal(base, digest) {
				t.Fatal("digest must change with the content")
			}
		})
	}
}

func TestVerifySignatures(t *testing.T) {
	keys := []crypto.Signer{
		custodytest.NewKey(),
		custodytest.NewKey(),
		custodytest.NewKey(),
	}
	owners := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		owners[string(k.PublicKey().Address())] = struct{}{}
	}
	isOwner := func(a custody.Address) bool {
		_, ok := owners[string(a)]
		return ok
	}

	dest := custodytest.NewAddress()
	digest := BuildDigest(dest, 100, []byte("data"), 0)

	quorum := func(signers ...crypto.Signer) []*StdSignature {
		sigs := make([]*StdSignature, 0, len(signers))
		for _, s := range signers {
			sig, err := Sign(s, dest, 100, []byte("data"), 0)
			if err != nil {
				t.Fatalf("cannot sign: %+v", err)
			}
			sigs = append(sigs, sig)
		}
		return sigs
	}

	t.Run("full quorum", func(t *testing.T) {
		signers, err := VerifySignatures(digest, quorum(keys...), 3, isOwner)
		assert.Nil(t, err)
		assert.Equal(t, 3, len(signers))
		for i, k := range keys {
			assert.Equal(t, k.PublicKey().Address(), signers[i])
		}
	})

	t.Run("too few signatures", func(t *testing.T) {
		_, err := VerifySignatures(digest, quorum(keys[0], keys[1]), 3, isOwner)
		if !ErrSignatureCount.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("too many signatures", func(t *testing.T) {
		_, err := VerifySignatures(digest, quorum(keys...), 2, isOwner)
		if !ErrSignatureCount.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("non owner signer", func(t *testing.T) {
		_, err := VerifySignatures(digest, quorum(keys[0], keys[1], custodytest.NewKey()), 3, isOwner)
		if !ErrUnauthorizedSigner.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("duplicate signer", func(t *testing.T) {
		_, err := VerifySignatures(digest, quorum(keys[0], keys[1], keys[1]), 3, isOwner)
		if !ErrDuplicateSigner.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("signature over other content", func(t *testing.T) {
		sigs := quorum(keys[0], keys[1])
		bad, err := Sign(keys[2], dest, 666, []byte("data"), 0)
		assert.Nil(t, err)
		_, err = VerifySignatures(digest, append(sigs, bad), 3, isOwner)
		if !ErrUnauthorizedSigner.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("replayed nonce", func(t *testing.T) {
		// signatures over nonce 0 must not verify for nonce 1
		next := BuildDigest(dest, 100, []byte("data"), 1)
		_, err := VerifySignatures(next, quorum(keys...), 3, isOwner)
		if !ErrUnauthorizedSigner.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})
}

func TestStdSignatureValidate(t *testing.T) {
	key := custodytest.NewKey()
	sig, err := key.Sign([]byte("message"))
	assert.Nil(t, err)

	cases := map[string]struct {
		sig     *StdSignature
		wantErr bool
	}{
		"complete record": {
			sig: &StdSignature{Pubkey: key.PublicKey(), Signature: sig},
		},
		"nil record": {
			sig:     nil,
			wantErr: true,
		},
		"missing pubkey": {
			sig:     &StdSignature{Signature: sig},
			wantErr: true,
		},
		"missing signature": {
			sig:     &StdSignature{Pubkey: key.PublicKey()},
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.sig.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("validation error expected")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
