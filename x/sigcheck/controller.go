package sigcheck

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 is the current way to prefix the bytes we sign. It keeps
// custody release signatures out of every other signing domain.
var SignCodeV1 = []byte{0, 0xC5, 0xD7, 0}

// StdSignature is one signature record of a quorum. The public key
// takes the role the recovery step plays in other schemes: the signer
// identity is derived from it after the signature verified.
type StdSignature struct {
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures both components are present and well formed.
func (s *StdSignature) Validate() error {
	if s == nil {
		return errors.Wrap(errors.ErrEmpty, "signature record")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrap(err, "pubkey")
	}
	if err := s.Signature.Validate(); err != nil {
		return errors.Wrap(err, "signature")
	}
	return nil
}

/*
BuildDigest combines all executable content of a request before signing.

We use the following format:

	sign code | len(destination) | destination | value              | len(payload)       | payload | nonce
	4 bytes   | uint8            | raw bytes   | uint64 (bigendian) | uint64 (bigendian) |         | uint64 (bigendian)

This is then hashed with sha256 so we have a constant length output to
feed into the signing step. The encoding is length-prefixed so no two
distinct inputs can produce the same byte stream.
*/
func BuildDigest(dest custody.Address, value uint64, payload []byte, nonce uint64) []byte {
	out := make([]byte, 0, 4+1+len(dest)+8+8+len(payload)+8)
	out = append(out, SignCodeV1...)
	out = append(out, uint8(len(dest)))
	out = append(out, dest...)
	out = appendUint64(out, value)
	out = appendUint64(out, uint64(len(payload)))
	out = append(out, payload...)
	out = appendUint64(out, nonce)

	digest := sha256.Sum256(out)
	return digest[:]
}

func appendUint64(bz []byte, v uint64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], v)
	return append(bz, raw[:]...)
}

// VerifySignatures checks a full quorum against the digest. Exactly
// required records must be supplied, every signature must verify, every
// derived identity must be a current owner according to isOwner, and no
// owner may appear twice. On success the ordered list of signer
// addresses is returned.
func VerifySignatures(digest []byte, sigs []*StdSignature, required uint32, isOwner func(custody.Address) bool) ([]custody.Address, error) {
	if uint32(len(sigs)) != required {
		return nil, errors.Wrapf(ErrSignatureCount, "%d signatures, %d required", len(sigs), required)
	}

	signers := make([]custody.Address, 0, len(sigs))
	seen := make(map[string]struct{}, len(sigs))
	for i, sig := range sigs {
		if err := sig.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signature #%d", i)
		}
		if !sig.Pubkey.Verify(digest, sig.Signature) {
			return nil, errors.Wrapf(ErrUnauthorizedSigner, "signature #%d does not verify", i)
		}
		addr := sig.Pubkey.Address()
		if !isOwner(addr) {
			return nil, errors.Wrapf(ErrUnauthorizedSigner, "signer %s is not an owner", addr)
		}
		if _, ok := seen[string(addr)]; ok {
			return nil, errors.Wrapf(ErrDuplicateSigner, "signer %s", addr)
		}
		seen[string(addr)] = struct{}{}
		signers = append(signers, addr)
	}
	return signers, nil
}

// Sign produces one signature record over the digest of the given
// request content. Meant for clients and tests.
func Sign(signer crypto.Signer, dest custody.Address, value uint64, payload []byte, nonce uint64) (*StdSignature, error) {
	digest := BuildDigest(dest, value, payload, nonce)
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign digest")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
