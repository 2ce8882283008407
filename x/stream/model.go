package stream

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/orm"
)

// BucketName is where we store the streams
const BucketName = "stream"

// Timeframe is a block height window. Both ends are inclusive for the
// purpose of the vesting, see ElapsedBlocks.
type Timeframe struct {
	StartBlock uint64 `protobuf:"varint,1,opt,name=start_block,json=startBlock,proto3" json:"start_block"`
	StopBlock  uint64 `protobuf:"varint,2,opt,name=stop_block,json=stopBlock,proto3" json:"stop_block"`
}

func (m *Timeframe) Reset()         { *m = Timeframe{} }
func (m *Timeframe) String() string { return proto.CompactTextString(m) }
func (*Timeframe) ProtoMessage()    {}

// Validate ensures the window is not inverted.
func (m *Timeframe) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "timeframe")
	}
	if m.StartBlock > m.StopBlock {
		return errors.Wrapf(errors.ErrInput, "start block %d after stop block %d", m.StartBlock, m.StopBlock)
	}
	return nil
}

// Stream is the persisted escrow record.
type Stream struct {
	Sender           weave.Address `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender,omitempty"`
	Recipient        weave.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Balance          uint64        `protobuf:"varint,3,opt,name=balance,proto3" json:"balance"`
	WithdrawnBalance uint64        `protobuf:"varint,4,opt,name=withdrawn_balance,json=withdrawnBalance,proto3" json:"withdrawn_balance"`
	PaymentPerBlock  uint64        `protobuf:"varint,5,opt,name=payment_per_block,json=paymentPerBlock,proto3" json:"payment_per_block"`
	Timeframe        *Timeframe    `protobuf:"bytes,6,opt,name=timeframe,proto3" json:"timeframe,omitempty"`
}

var _ orm.CloneableData = (*Stream)(nil)

type streamMsg Stream

func (m *streamMsg) Reset()         { *m = streamMsg{} }
func (m *streamMsg) String() string { return proto.CompactTextString(m) }
func (*streamMsg) ProtoMessage()    {}

func (m *Stream) Marshal() ([]byte, error) {
	return proto.Marshal((*streamMsg)(m))
}

func (m *Stream) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*streamMsg)(m))
}

// GetTimeframe returns the window of the stream. A missing window is
// returned as the zero value.
func (m *Stream) GetTimeframe() Timeframe {
	if m == nil || m.Timeframe == nil {
		return Timeframe{}
	}
	return *m.Timeframe
}

// Validate ensures the stream is valid
func (m *Stream) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Sender.Equals(m.Recipient) {
		errs = errors.AppendField(errs, "Recipient", errors.Wrap(errors.ErrInput, "sender cannot be the recipient"))
	}
	errs = errors.AppendField(errs, "Timeframe", m.Timeframe.Validate())
	if m.WithdrawnBalance > m.Balance {
		errs = errors.AppendField(errs, "WithdrawnBalance", errors.Wrap(errors.ErrState, "more withdrawn than deposited"))
	}
	return errs
}

// Copy makes a new stream with the same content
func (m *Stream) Copy() orm.CloneableData {
	var tf *Timeframe
	if m.Timeframe != nil {
		cp := *m.Timeframe
		tf = &cp
	}
	return &Stream{
		Sender:           append(weave.Address(nil), m.Sender...),
		Recipient:        append(weave.Address(nil), m.Recipient...),
		Balance:          m.Balance,
		WithdrawnBalance: m.WithdrawnBalance,
		PaymentPerBlock:  m.PaymentPerBlock,
		Timeframe:        tf,
	}
}

// StreamID returns the database key of the stream with given id.
func StreamID(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// Bucket is a type-safe wrapper around orm.Bucket. Streams are stored under
// their sequential id and indexed by both parties.
type Bucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewBucket initializes a stream.Bucket with default name
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Stream))).
		WithIndex("sender", senderIndex, false).
		WithIndex("recipient", recipientIndex, false)
	return Bucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create saves a new stream under the next free id and returns that id.
func (b Bucket) Create(db weave.KVStore, s *Stream) (uint64, error) {
	// Validate before consuming an id.
	if err := s.Validate(); err != nil {
		return 0, errors.Wrap(err, "invalid stream")
	}
	id, key, err := b.idSeq.Next(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire id")
	}
	if err := b.Bucket.Save(db, orm.NewSimpleObj(key, s)); err != nil {
		return 0, errors.Wrap(err, "cannot store stream")
	}
	return id, nil
}

// GetStream loads the stream with given id. ErrNotFound is returned when
// there is no such stream.
func (b Bucket) GetStream(db weave.ReadOnlyKVStore, id uint64) (*Stream, error) {
	obj, err := b.Get(db, StreamID(id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "stream %d", id)
	}
	s, ok := obj.Value().(*Stream)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return s, nil
}

// SaveStream overwrites the stream with given id.
func (b Bucket) SaveStream(db weave.KVStore, id uint64, s *Stream) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(StreamID(id), s))
}

// NextID returns the id that the next created stream will get.
func (b Bucket) NextID(db weave.ReadOnlyKVStore) (uint64, error) {
	return b.idSeq.Current(db)
}

// IDsBySender returns the ids of all streams funded by given address.
func (b Bucket) IDsBySender(db weave.ReadOnlyKVStore, sender weave.Address) ([]uint64, error) {
	return b.indexedIDs(db, "sender", sender)
}

// IDsByRecipient returns the ids of all streams paying given address.
func (b Bucket) IDsByRecipient(db weave.ReadOnlyKVStore, recipient weave.Address) ([]uint64, error) {
	return b.indexedIDs(db, "recipient", recipient)
}

func (b Bucket) indexedIDs(db weave.ReadOnlyKVStore, index string, addr weave.Address) ([]uint64, error) {
	objs, err := b.GetIndexed(db, index, addr)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(objs))
	for _, o := range objs {
		id, err := orm.DecodeSequence(o.Key())
		if err != nil {
			return nil, errors.Wrap(err, "stream key")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func senderIndex(obj orm.Object) ([]byte, error) {
	s, ok := obj.Value().(*Stream)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return s.Sender, nil
}

func recipientIndex(obj orm.Object) ([]byte, error) {
	s, ok := obj.Value().(*Stream)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return s.Recipient, nil
}
