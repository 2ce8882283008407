package stream

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/crypto"
)

// ValidateSignature returns true if sig is a recoverable secp256k1
// signature of the digest made by the key that controls the claimed
// address. Malformed signatures are reported as not matching.
func ValidateSignature(digest []byte, sig []byte, claimed weave.Address) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	pub, err := crypto.RecoverSecp256k1(digest, sig)
	if err != nil {
		return false
	}
	return pub.Condition().Address().Equals(claimed)
}

// SignTerms signs the commitment digest of the new terms. It is used by the
// counterparty that does not submit the update.
func SignTerms(key *crypto.PrivateKeySecp256k1, digest [32]byte) ([]byte, error) {
	return key.SignDigest(digest[:])
}
