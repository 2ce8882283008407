package cash

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg transfers coins between two wallets.
type SendMsg struct {
	Source      weave.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string        `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

// Ensure we implement the Msg interface
var _ weave.Msg = (*SendMsg)(nil)

type sendMsg SendMsg

func (m *sendMsg) Reset()         { *m = sendMsg{} }
func (m *sendMsg) String() string { return proto.CompactTextString(m) }
func (*sendMsg) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsg)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsg)(m))
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Source", validAddress(m.Source))
	errs = errors.AppendField(errs, "Destination", validAddress(m.Destination))
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}

func validAddress(a weave.Address) error {
	if len(a) == 0 {
		return errors.ErrEmpty
	}
	return a.Validate()
}
