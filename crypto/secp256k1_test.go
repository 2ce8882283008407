package crypto

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestSecp256k1SignAndRecover(t *testing.T) {
	private := GenPrivKeySecp256k1()
	public := private.PublicKey()

	digest := sha256.Sum256([]byte("payment terms"))
	sig, err := private.SignDigest(digest[:])
	assert.Nil(t, err)
	assert.Equal(t, RecoverableSignatureLength, len(sig))
	if sig[64] > 3 {
		t.Fatalf("recovery id must be normalized, got %d", sig[64])
	}

	got, err := RecoverSecp256k1(digest[:], sig)
	assert.Nil(t, err)
	assert.Equal(t, public.Bytes(), got.Bytes())

	// Ethereum style recovery id is accepted as well.
	eth := append([]byte{}, sig...)
	eth[64] += 27
	got, err = RecoverSecp256k1(digest[:], eth)
	assert.Nil(t, err)
	assert.Equal(t, public.Bytes(), got.Bytes())
}

func TestSecp256k1Verify(t *testing.T) {
	private := GenPrivKeySecp256k1()
	public := private.PublicKey()
	other := GenPrivKeySecp256k1().PublicKey()

	msg := []byte("foobar")
	sig, err := private.Sign(msg)
	assert.Nil(t, err)

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify([]byte("other"), sig) {
		t.Fatal("verified message signature of the wrong message")
	}
	if other.Verify(msg, sig) {
		t.Fatal("verified signature with a wrong key")
	}
}

func TestSecp256k1RecoverMalformed(t *testing.T) {
	digest := sha256.Sum256([]byte("x"))
	valid, err := GenPrivKeySecp256k1().SignDigest(digest[:])
	assert.Nil(t, err)

	badV := append([]byte{}, valid...)
	badV[64] = 5

	cases := map[string]struct {
		digest []byte
		sig    []byte
	}{
		"short signature": {digest: digest[:], sig: valid[:64]},
		"invalid v":       {digest: digest[:], sig: badV},
		"short digest":    {digest: digest[:31], sig: valid},
		"zero signature":  {digest: digest[:], sig: make([]byte, 65)},
		"nil signature":   {digest: digest[:], sig: nil},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := RecoverSecp256k1(tc.digest, tc.sig)
			assert.IsErr(t, errors.ErrInput, err)
		})
	}
}

func TestSecp256k1DeterministicKey(t *testing.T) {
	raw := bytes.Repeat([]byte{1}, 32)
	a := PrivKeySecp256k1FromBytes(raw).PublicKey()
	b := PrivKeySecp256k1FromBytes(raw).PublicKey()
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, 33, len(a.Bytes()))
	assert.Nil(t, a.Condition().Validate())
}

func TestSecp256k1ConditionText(t *testing.T) {
	cond := GenPrivKeySecp256k1().PublicKey().Condition()
	assert.Nil(t, cond.Validate())

	addr, err := vesting.ParseAddress("cond:" + cond.String())
	assert.Nil(t, err)
	assert.Equal(t, cond.Address(), addr)

	var got vesting.Condition
	raw, err := cond.MarshalJSON()
	assert.Nil(t, err)
	assert.Nil(t, got.UnmarshalJSON(raw))
	assert.Equal(t, cond, got)
}

func TestSecp256k1BytesRoundTrip(t *testing.T) {
	key := GenPrivKeySecp256k1()
	raw := key.Bytes()
	assert.Equal(t, 32, len(raw))
	assert.Equal(t, key.PublicKey().Bytes(), PrivKeySecp256k1FromBytes(raw).PublicKey().Bytes())
}
