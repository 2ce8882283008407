package crypto

import (
	"crypto/sha256"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// RecoverableSignatureLength is the size of a R || S || V encoded secp256k1
// signature.
const RecoverableSignatureLength = 65

// compact signatures produced by btcec carry the recovery id in the first
// byte as 27 + id, plus 4 for compressed public keys.
const (
	compactHeaderBase       = 27
	compactHeaderCompressed = 4
)

// secp256k1Type is the condition type of secp256k1 keys. Condition types are
// limited to 8 characters.
const secp256k1Type = "secp256"

// PublicKeySecp256k1 is a compressed (33 bytes) secp256k1 public key.
type PublicKeySecp256k1 []byte

var _ PubKey = PublicKeySecp256k1(nil)

// Verify checks that the recoverable signature of the sha256 hash of the
// message was produced by this key.
func (p PublicKeySecp256k1) Verify(message, sig []byte) bool {
	digest := sha256.Sum256(message)
	pub, err := RecoverSecp256k1(digest[:], sig)
	if err != nil {
		return false
	}
	return pub.Condition().Equals(p.Condition())
}

// Condition encodes the public key into a weave permission
func (p PublicKeySecp256k1) Condition() vesting.Condition {
	return vesting.NewCondition(ExtensionName, secp256k1Type, p)
}

func (p PublicKeySecp256k1) Bytes() []byte {
	return p
}

// PrivateKeySecp256k1 wraps a secp256k1 private key.
type PrivateKeySecp256k1 struct {
	key *btcec.PrivateKey
}

var _ Signer = (*PrivateKeySecp256k1)(nil)

// GenPrivKeySecp256k1 returns a random new private key.
func GenPrivKeySecp256k1() *PrivateKeySecp256k1 {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		panic(err)
	}
	return &PrivateKeySecp256k1{key: key}
}

// PrivKeySecp256k1FromBytes loads a private key from its 32 bytes scalar.
// Use for deterministic keys in test cases.
func PrivKeySecp256k1FromBytes(raw []byte) *PrivateKeySecp256k1 {
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return &PrivateKeySecp256k1{key: key}
}

// Bytes returns the 32 bytes scalar of the key.
func (p *PrivateKeySecp256k1) Bytes() []byte {
	return p.key.Serialize()
}

// Sign returns a recoverable signature of the sha256 hash of the message.
func (p *PrivateKeySecp256k1) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return p.SignDigest(digest[:])
}

// SignDigest returns a 65 bytes R || S || V signature of the given 32 bytes
// digest. V is the recovery id in range 0..3.
func (p *PrivateKeySecp256k1) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != sha256.Size {
		return nil, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", sha256.Size)
	}
	compact, err := btcec.SignCompact(btcec.S256(), p.key, digest, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	sig := make([]byte, RecoverableSignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0] - compactHeaderBase - compactHeaderCompressed
	return sig, nil
}

// PublicKey returns the corresponding compressed public key.
func (p *PrivateKeySecp256k1) PublicKey() PubKey {
	return PublicKeySecp256k1(p.key.PubKey().SerializeCompressed())
}

// RecoverSecp256k1 returns the public key that produced given R || S || V
// signature of the digest. V may be given either as 0..3 or as 27..30.
func RecoverSecp256k1(digest, sig []byte) (PublicKeySecp256k1, error) {
	if len(digest) != sha256.Size {
		return nil, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", sha256.Size)
	}
	if len(sig) != RecoverableSignatureLength {
		return nil, errors.Wrapf(errors.ErrInput, "signature must be %d bytes", RecoverableSignatureLength)
	}
	v := sig[64]
	if v >= compactHeaderBase {
		v -= compactHeaderBase
	}
	if v > 3 {
		return nil, errors.Wrapf(errors.ErrInput, "invalid recovery id %d", sig[64])
	}

	n := btcec.S256().N
	for _, part := range [][]byte{sig[:32], sig[32:64]} {
		if x := new(big.Int).SetBytes(part); x.Sign() == 0 || x.Cmp(n) >= 0 {
			return nil, errors.Wrap(errors.ErrInput, "signature scalar out of range")
		}
	}

	compact := make([]byte, RecoverableSignatureLength)
	compact[0] = compactHeaderBase + compactHeaderCompressed + v
	copy(compact[1:], sig[:64])

	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, digest)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return PublicKeySecp256k1(pub.SerializeCompressed()), nil
}
