package cash

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the value stored for every wallet.
type Set struct {
	Coins uint64 `protobuf:"varint,1,opt,name=coins,proto3" json:"coins,omitempty"`
}

var _ orm.CloneableData = (*Set)(nil)

type setMsg Set

func (m *setMsg) Reset()         { *m = setMsg{} }
func (m *setMsg) String() string { return proto.CompactTextString(m) }
func (*setMsg) ProtoMessage()    {}

func (s *Set) Marshal() ([]byte, error) {
	return proto.Marshal((*setMsg)(s))
}

func (s *Set) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*setMsg)(s))
}

func (s *Set) GetCoins() uint64 {
	if s != nil {
		return s.Coins
	}
	return 0
}

// Validate accepts any amount, including an empty wallet.
func (s *Set) Validate() error {
	return nil
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{Coins: s.Coins}
}

// Add increases the amount held, failing on overflow.
func (s *Set) Add(amount uint64) error {
	sum := s.Coins + amount
	if sum < s.Coins {
		return errors.Wrap(errors.ErrOverflow, "wallet coins")
	}
	s.Coins = sum
	return nil
}

// Subtract decreases the amount held. It never allows a negative result.
func (s *Set) Subtract(amount uint64) error {
	if s.Coins < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", s.Coins, amount)
	}
	s.Coins -= amount
	return nil
}

// NewWallet creates an empty wallet with this address.
func NewWallet(key weave.Address) orm.Object {
	return orm.NewSimpleObj(key, new(Set))
}

// WalletWith creates a wallet with the given balance. It fails if the
// address is not valid.
func WalletWith(key weave.Address, coins uint64) (orm.Object, error) {
	if err := key.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	return orm.NewSimpleObj(key, &Set{Coins: coins}), nil
}

// AsSet extracts the coins of a wallet object. Returns nil for a nil object.
func AsSet(obj orm.Object) *Set {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Set)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Save ensures the object is a wallet before persisting it.
func (b Bucket) Save(db weave.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Set); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetOrCreate returns the stored wallet or a new empty one that is not yet
// saved.
func (b Bucket) GetOrCreate(db weave.ReadOnlyKVStore, key weave.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewWallet(key)
	}
	return obj, nil
}
