package stream

import (
	"crypto/sha256"
	"encoding/binary"

	weave "github.com/iov-one/vesting"
)

// CanonicalBytes returns the fixed width serialization of a stream record:
//
//	u64(id) || sender || recipient || u64(balance) || u64(withdrawn) ||
//	u64(payment per block) || u64(start block) || u64(stop block)
//
// All integers are big endian. Off-chain clients must produce exactly the
// same bytes to sign new terms.
func CanonicalBytes(id uint64, s *Stream) []byte {
	tf := s.GetTimeframe()
	out := make([]byte, 0, 8+len(s.Sender)+len(s.Recipient)+5*8)
	out = appendUint64(out, id)
	out = append(out, s.Sender...)
	out = append(out, s.Recipient...)
	out = appendUint64(out, s.Balance)
	out = appendUint64(out, s.WithdrawnBalance)
	out = appendUint64(out, s.PaymentPerBlock)
	out = appendUint64(out, tf.StartBlock)
	out = appendUint64(out, tf.StopBlock)
	return out
}

// CommitmentDigest returns the digest a counterparty signs to agree that the
// stream with given id and content switches to the new terms.
func CommitmentDigest(id uint64, s *Stream, newPPB uint64, newTF Timeframe) [32]byte {
	msg := CanonicalBytes(id, s)
	msg = appendUint64(msg, newPPB)
	msg = appendUint64(msg, newTF.StartBlock)
	msg = appendUint64(msg, newTF.StopBlock)
	return sha256.Sum256(msg)
}

// HashStream computes the commitment digest for the currently stored state
// of the stream.
func (c *Controller) HashStream(db weave.ReadOnlyKVStore, id uint64, newPPB uint64, newTF Timeframe) ([32]byte, error) {
	s, err := c.bucket.GetStream(db, id)
	if err != nil {
		return [32]byte{}, err
	}
	return CommitmentDigest(id, s, newPPB, newTF), nil
}

func appendUint64(b []byte, v uint64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], v)
	return append(b, raw[:]...)
}
