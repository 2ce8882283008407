package stream

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/gconf"
)

const packageName = "stream"

// Configuration of the stream extension.
type Configuration struct {
	// Custody is the address holding the funds of all streams.
	Custody weave.Address `protobuf:"bytes,1,opt,name=custody,proto3" json:"custody"`
}

var _ gconf.Configuration = (*Configuration)(nil)

type configurationMsg Configuration

func (m *configurationMsg) Reset()         { *m = configurationMsg{} }
func (m *configurationMsg) String() string { return proto.CompactTextString(m) }
func (*configurationMsg) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationMsg)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationMsg)(c))
}

func (c *Configuration) Validate() error {
	return errors.Field("Custody", c.Custody.Validate(), "custody address")
}

// DefaultCustody is the custody address used when no configuration was
// provided at genesis.
func DefaultCustody() weave.Address {
	return weave.NewCondition("stream", "custody", []byte("pool")).Address()
}

// loadCustody returns the configured custody address.
func loadCustody(db gconf.ReadStore) (weave.Address, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf.Custody, nil
	case errors.ErrNotFound.Is(err):
		return DefaultCustody(), nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
