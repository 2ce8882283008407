package weavetest

import weave "github.com/iov-one/vesting"

// Tx wraps a single message. When Err is set GetMsg returns it together
// with the message.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) { return tx.Msg, tx.Err }

// Serialization of test transactions is never needed.
func (tx *Tx) Marshal() ([]byte, error) { panic("weavetest: Tx cannot be marshaled") }
func (tx *Tx) Unmarshal([]byte) error   { panic("weavetest: Tx cannot be unmarshaled") }

// Msg routes to RoutePath. Marshal returns Serialized and Unmarshal stores
// its input there. Err, when set, is returned by every method but Path.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
