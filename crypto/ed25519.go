package crypto

import (
	"github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKeyEd25519 is the raw ed25519 public key.
type PublicKeyEd25519 []byte

var _ PubKey = PublicKeyEd25519(nil)

// Verify verifies the signature was created with this message and public key
func (p PublicKeyEd25519) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a weave permission
func (p PublicKeyEd25519) Condition() vesting.Condition {
	return vesting.NewCondition(ExtensionName, "ed25519", p)
}

func (p PublicKeyEd25519) Bytes() []byte {
	return p
}

// PrivateKeyEd25519 is the raw ed25519 private key.
type PrivateKeyEd25519 []byte

var _ Signer = PrivateKeyEd25519(nil)

// Sign returns a matching signature for this private key
func (p PrivateKeyEd25519) Sign(message []byte) ([]byte, error) {
	if len(p) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKeyEd25519) PublicKey() PubKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKeyEd25519(pub)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivateKeyEd25519 {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKeyEd25519(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) PrivateKeyEd25519 {
	return PrivateKeyEd25519(ed25519.NewKeyFromSeed(seed))
}
