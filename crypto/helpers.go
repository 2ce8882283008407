package crypto

import (
	"github.com/iov-one/vesting"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	// Verify verifies the signature was created with this message and
	// public key.
	Verify(message, sig []byte) bool
	// Condition encodes the public key into a weave permission.
	//    p.Condition().Address()
	// will return an Address if needed.
	Condition() vesting.Condition
	// Bytes returns the binary representation of the key.
	Bytes() []byte
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PubKey
}
