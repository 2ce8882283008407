package vesting

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/vesting/crypto/bech32"
	"github.com/iov-one/vesting/errors"
)

// AddressLength is the length of every address. It may only be changed
// during program initialization, before any address is computed.
var AddressLength = 20

// Extension and type are short identifiers, data is arbitrary binary. (?s)
// lets the data contain newlines.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who may authorize an action. It is the extension
// name, the condition type and the type specific data joined with slashes:
//
//	sigs/ed25519/<public key bytes>
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(other Condition) bool {
	return bytes.Equal(c, other)
}

// String returns the condition with its data in upper case hex, for
// example "sigs/ed25519/1A2B".
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return errors.Wrap(err, "condition json")
	}
	cond, err := parseConditionText(text)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseConditionText reverses Condition.String. An empty text is a nil
// condition.
func parseConditionText(text string) (Condition, error) {
	if text == "" {
		return nil, nil
	}
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return nil, errors.ErrInput.Newf("condition %q: want ext/type/data", text)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.ErrInput.Newf("condition %q data: %s", text, err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}

// Address is the truncated sha256 digest of a Condition.
type Address []byte

// NewAddress returns the address of the given condition bytes.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(other Address) bool {
	return bytes.Equal(a, other)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address length %d: %v", len(a), []byte(a))
	}
	return nil
}

// String returns the address in upper case hex.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32String returns the bech32 form of the address with the given
// human readable part.
func (a Address) Bech32String(hrp string) (string, error) {
	enc, err := bech32.Encode(hrp, a)
	return enc, errors.Wrap(err, "address")
}

// MarshalJSON encodes the address as hex, not as the default base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return errors.Wrap(err, "address json")
	}
	return a.Set(text)
}

// Set implements flag.Value.
func (a *Address) Set(text string) error {
	addr, err := ParseAddress(text)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes the text form of an address. Plain text is hex.
// With a "cond:" prefix the text is a condition and its address is
// returned. With a "bech32:" prefix the text is bech32. An empty value is a
// nil address.
func ParseAddress(text string) (Address, error) {
	format, value := "hex", text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		format, value = text[:i], text[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "hex address")
		}
		addr = raw
	case "bech32":
		_, raw, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.Wrap(err, "bech32 address")
		}
		addr = raw
	case "cond":
		cond, err := parseConditionText(value)
		if err != nil {
			return nil, err
		}
		if err := cond.Validate(); err != nil {
			return nil, err
		}
		return cond.Address(), nil
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
