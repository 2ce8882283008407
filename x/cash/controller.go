package cash

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins is used to transfer funds from one account to another.
	MoveCoins(store weave.KVStore, src weave.Address, dest weave.Address, amount uint64) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	IssueCoins(store weave.KVStore, dest weave.Address, amount uint64) error
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if
// so desired
type Controller interface {
	CoinMover
	CoinMinter
	Balance(weave.ReadOnlyKVStore, weave.Address) (uint64, error)
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of coins owned by given address. An unknown
// address owns nothing.
func (c BaseController) Balance(store weave.ReadOnlyKVStore, src weave.Address) (uint64, error) {
	obj, err := c.bucket.Get(store, src)
	if err != nil {
		return 0, errors.Wrap(err, "cannot get account state")
	}
	return AsSet(obj).GetCoins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store weave.KVStore,
	src weave.Address, dest weave.Address, amount uint64) error {

	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return errors.Wrap(err, "cannot load sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %#v", src)
	}
	if err := AsSet(sender).Subtract(amount); err != nil {
		return err
	}
	if src.Equals(dest) {
		// Funds never leave the wallet.
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(store, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.bucket.Save(store, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(store weave.KVStore,
	dest weave.Address, amount uint64) error {

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
