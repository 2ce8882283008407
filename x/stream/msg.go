package stream

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

const (
	pathCreateMsg        = "stream/create"
	pathRefuelMsg        = "stream/refuel"
	pathWithdrawMsg      = "stream/withdraw"
	pathRefundMsg        = "stream/refund"
	pathUpdateDetailsMsg = "stream/update"
)

var _ weave.Msg = (*CreateMsg)(nil)
var _ weave.Msg = (*RefuelMsg)(nil)
var _ weave.Msg = (*WithdrawMsg)(nil)
var _ weave.Msg = (*RefundMsg)(nil)
var _ weave.Msg = (*UpdateDetailsMsg)(nil)

// CreateMsg opens a new stream funded by the main signer.
type CreateMsg struct {
	Recipient       weave.Address `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Amount          uint64        `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Timeframe       *Timeframe    `protobuf:"bytes,3,opt,name=timeframe,proto3" json:"timeframe,omitempty"`
	PaymentPerBlock uint64        `protobuf:"varint,4,opt,name=payment_per_block,json=paymentPerBlock,proto3" json:"payment_per_block,omitempty"`
}

// RefuelMsg adds funds to an existing stream.
type RefuelMsg struct {
	StreamID uint64 `protobuf:"varint,1,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
	Amount   uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

// WithdrawMsg releases vested funds to the recipient.
type WithdrawMsg struct {
	StreamID uint64 `protobuf:"varint,1,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
}

// RefundMsg returns unvested funds to the sender of a finished stream.
type RefundMsg struct {
	StreamID uint64 `protobuf:"varint,1,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
}

// UpdateDetailsMsg switches a stream to new terms. Signature is the
// counterparty signature of the commitment digest.
type UpdateDetailsMsg struct {
	StreamID        uint64        `protobuf:"varint,1,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
	PaymentPerBlock uint64        `protobuf:"varint,2,opt,name=payment_per_block,json=paymentPerBlock,proto3" json:"payment_per_block,omitempty"`
	Timeframe       *Timeframe    `protobuf:"bytes,3,opt,name=timeframe,proto3" json:"timeframe,omitempty"`
	Signer          weave.Address `protobuf:"bytes,4,opt,name=signer,proto3" json:"signer,omitempty"`
	Signature       []byte        `protobuf:"bytes,5,opt,name=signature,proto3" json:"signature,omitempty"`
}

type createMsg CreateMsg

func (m *createMsg) Reset()         { *m = createMsg{} }
func (m *createMsg) String() string { return proto.CompactTextString(m) }
func (*createMsg) ProtoMessage()    {}

func (m *CreateMsg) Marshal() ([]byte, error)   { return proto.Marshal((*createMsg)(m)) }
func (m *CreateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*createMsg)(m)) }

type refuelMsg RefuelMsg

func (m *refuelMsg) Reset()         { *m = refuelMsg{} }
func (m *refuelMsg) String() string { return proto.CompactTextString(m) }
func (*refuelMsg) ProtoMessage()    {}

func (m *RefuelMsg) Marshal() ([]byte, error)   { return proto.Marshal((*refuelMsg)(m)) }
func (m *RefuelMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*refuelMsg)(m)) }

type withdrawMsg WithdrawMsg

func (m *withdrawMsg) Reset()         { *m = withdrawMsg{} }
func (m *withdrawMsg) String() string { return proto.CompactTextString(m) }
func (*withdrawMsg) ProtoMessage()    {}

func (m *WithdrawMsg) Marshal() ([]byte, error)   { return proto.Marshal((*withdrawMsg)(m)) }
func (m *WithdrawMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*withdrawMsg)(m)) }

type refundMsg RefundMsg

func (m *refundMsg) Reset()         { *m = refundMsg{} }
func (m *refundMsg) String() string { return proto.CompactTextString(m) }
func (*refundMsg) ProtoMessage()    {}

func (m *RefundMsg) Marshal() ([]byte, error)   { return proto.Marshal((*refundMsg)(m)) }
func (m *RefundMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*refundMsg)(m)) }

type updateDetailsMsg UpdateDetailsMsg

func (m *updateDetailsMsg) Reset()         { *m = updateDetailsMsg{} }
func (m *updateDetailsMsg) String() string { return proto.CompactTextString(m) }
func (*updateDetailsMsg) ProtoMessage()    {}

func (m *UpdateDetailsMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateDetailsMsg)(m))
}

func (m *UpdateDetailsMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateDetailsMsg)(m))
}

//--------- Path routing --------

// Path fulfills weave.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Path fulfills weave.Msg interface to allow routing
func (RefuelMsg) Path() string {
	return pathRefuelMsg
}

// Path fulfills weave.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Path fulfills weave.Msg interface to allow routing
func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Path fulfills weave.Msg interface to allow routing
func (UpdateDetailsMsg) Path() string {
	return pathUpdateDetailsMsg
}

//--------- Validation --------

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	var errs error
	if len(m.Recipient) == 0 {
		errs = errors.AppendField(errs, "Recipient", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	}
	errs = errors.AppendField(errs, "Timeframe", m.Timeframe.Validate())
	return errs
}

// Validate makes sure that this is sensible
func (m *RefuelMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Field("Amount", errors.ErrAmount, "must be positive")
	}
	return nil
}

// Validate accepts any stream id. Unknown streams are reported when the
// message is processed.
func (m *WithdrawMsg) Validate() error {
	return nil
}

// Validate accepts any stream id. Unknown streams are reported when the
// message is processed.
func (m *RefundMsg) Validate() error {
	return nil
}

// Validate checks the proposed terms. The signature is checked against the
// stream state when the message is processed.
func (m *UpdateDetailsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Timeframe", m.Timeframe.Validate())
	if len(m.Signer) == 0 {
		errs = errors.AppendField(errs, "Signer", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	}
	return errs
}
