package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// PublicKey is an ed25519 public key used to identify a signer.
type PublicKey struct {
	Ed25519 []byte
}

var _ PubKey = (*PublicKey)(nil)

// Validate returns an error unless the key has the expected raw size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Verify verifies the signature was created with this message and public key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a custody permission.
func (p *PublicKey) Condition() custody.Condition {
	if p == nil {
		return nil
	}
	return custody.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}

// Signature holds the raw bytes of an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

// Validate returns an error unless the signature has the expected size.
func (s *Signature) Validate() error {
	if s == nil || len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 signature")
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key
// from a given seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
