package weavetest

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/crypto"
)

// NewKey returns a new, random ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewSecpKey returns a new, random secp256k1 signer. Use it when the
// signature must be recoverable.
func NewSecpKey() *crypto.PrivateKeySecp256k1 {
	return crypto.GenPrivKeySecp256k1()
}

// NewCondition returns a condition of a random signer.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
