package stream

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/x/utils"
)

// Ledger moves funds between accounts. cash.Controller implements it.
type Ledger interface {
	MoveCoins(db weave.KVStore, src weave.Address, dest weave.Address, amount uint64) error
}

// Controller implements all stream operations. Every mutating method is
// atomic: when an error is returned no state was changed and no funds were
// moved.
type Controller struct {
	bucket Bucket
	ledger Ledger
	clock  Clock
}

// NewController returns a controller storing streams in the default bucket.
func NewController(ledger Ledger, clock Clock) *Controller {
	return &Controller{
		bucket: NewBucket(),
		ledger: ledger,
		clock:  clock,
	}
}

// Create registers a new stream and locks the initial funds of the sender
// in custody. The id of the new stream is returned.
func (c *Controller) Create(
	ctx weave.Context,
	db weave.KVStore,
	sender, recipient weave.Address,
	initial uint64,
	tf Timeframe,
	ppb uint64,
) (uint64, error) {
	var id uint64
	err := utils.Atomic(db, func(db weave.KVStore) error {
		custody, err := loadCustody(db)
		if err != nil {
			return err
		}
		s := &Stream{
			Sender:          sender,
			Recipient:       recipient,
			Balance:         initial,
			PaymentPerBlock: ppb,
			Timeframe:       &tf,
		}
		if err := s.Validate(); err != nil {
			return errors.Wrap(err, "invalid stream")
		}
		if err := checkFunded(initial, ppb, tf); err != nil {
			return err
		}
		if id, err = c.bucket.Create(db, s); err != nil {
			return err
		}
		return c.transfer(db, sender, custody, initial)
	})
	if err != nil {
		return 0, err
	}
	weave.GetLogger(ctx).Debug("stream created", "stream", id, "amount", initial)
	return id, nil
}

// Refuel adds funds to the stream. Only the sender may refuel.
func (c *Controller) Refuel(ctx weave.Context, db weave.KVStore, id uint64, amount uint64, caller weave.Address) (uint64, error) {
	err := utils.Atomic(db, func(db weave.KVStore) error {
		s, err := c.bucket.GetStream(db, id)
		if err != nil {
			return err
		}
		if !caller.Equals(s.Sender) {
			return errors.Wrap(errors.ErrUnauthorized, "only the sender can refuel")
		}
		if amount == 0 {
			return errors.Wrap(errors.ErrAmount, "refuel amount must be positive")
		}
		if s.Balance, err = addUint64(s.Balance, amount); err != nil {
			return errors.Wrap(err, "balance")
		}
		if err := c.bucket.SaveStream(db, id, s); err != nil {
			return err
		}
		custody, err := loadCustody(db)
		if err != nil {
			return err
		}
		return c.transfer(db, caller, custody, amount)
	})
	if err != nil {
		return 0, err
	}
	weave.GetLogger(ctx).Debug("stream refueled", "stream", id, "amount", amount)
	return amount, nil
}

// Withdraw releases everything that has vested and was not yet withdrawn to
// the recipient. Only the recipient may withdraw. Withdrawing when nothing
// is available succeeds and releases zero.
func (c *Controller) Withdraw(ctx weave.Context, db weave.KVStore, id uint64, caller weave.Address) (uint64, error) {
	height, err := c.clock.Height(ctx)
	if err != nil {
		return 0, err
	}

	var amount uint64
	err = utils.Atomic(db, func(db weave.KVStore) error {
		s, err := c.bucket.GetStream(db, id)
		if err != nil {
			return err
		}
		if !caller.Equals(s.Recipient) {
			return errors.Wrap(errors.ErrUnauthorized, "only the recipient can withdraw")
		}
		amount = Entitlement(s, s.Recipient, height)
		if amount == 0 {
			return nil
		}
		s.WithdrawnBalance += amount
		if err := c.bucket.SaveStream(db, id, s); err != nil {
			return err
		}
		custody, err := loadCustody(db)
		if err != nil {
			return err
		}
		return c.transfer(db, custody, s.Recipient, amount)
	})
	if err != nil {
		return 0, err
	}
	weave.GetLogger(ctx).Debug("stream withdrawn", "stream", id, "amount", amount, "height", height)
	return amount, nil
}

// Refund returns the unvested funds to the sender. Only the sender may ask
// for a refund and only once the window has closed.
func (c *Controller) Refund(ctx weave.Context, db weave.KVStore, id uint64, caller weave.Address) (uint64, error) {
	height, err := c.clock.Height(ctx)
	if err != nil {
		return 0, err
	}

	var amount uint64
	err = utils.Atomic(db, func(db weave.KVStore) error {
		s, err := c.bucket.GetStream(db, id)
		if err != nil {
			return err
		}
		if !caller.Equals(s.Sender) {
			return errors.Wrap(errors.ErrUnauthorized, "only the sender can refund")
		}
		if stop := s.GetTimeframe().StopBlock; height <= stop {
			return errors.Wrapf(ErrStreamStillActive, "height %d, stop block %d", height, stop)
		}
		amount = Entitlement(s, s.Sender, height)
		if amount == 0 {
			return nil
		}
		s.Balance -= amount
		if err := c.bucket.SaveStream(db, id, s); err != nil {
			return err
		}
		custody, err := loadCustody(db)
		if err != nil {
			return err
		}
		return c.transfer(db, custody, s.Sender, amount)
	})
	if err != nil {
		return 0, err
	}
	weave.GetLogger(ctx).Debug("stream refunded", "stream", id, "amount", amount, "height", height)
	return amount, nil
}

// UpdateDetails replaces the payment per block and the window of the
// stream. The caller must be one of the stream parties and the signer must
// be the other one. The signature must be made over the commitment digest
// of the current stream state and the new terms. Balances are not changed.
func (c *Controller) UpdateDetails(
	ctx weave.Context,
	db weave.KVStore,
	id uint64,
	newPPB uint64,
	newTF Timeframe,
	signer weave.Address,
	sig []byte,
	caller weave.Address,
) error {
	height, err := c.clock.Height(ctx)
	if err != nil {
		return err
	}

	err = utils.Atomic(db, func(db weave.KVStore) error {
		s, err := c.bucket.GetStream(db, id)
		if err != nil {
			return err
		}
		digest := CommitmentDigest(id, s, newPPB, newTF)
		if !ValidateSignature(digest[:], sig, signer) {
			return errors.Wrapf(ErrInvalidSignature, "terms not signed by %s", signer)
		}
		if !isCounterparty(s, caller, signer) {
			return errors.Wrap(errors.ErrUnauthorized, "caller and signer must be both stream parties")
		}
		if err := checkTerms(s, newPPB, newTF, height); err != nil {
			return err
		}
		s.PaymentPerBlock = newPPB
		s.Timeframe = &newTF
		return c.bucket.SaveStream(db, id, s)
	})
	if err != nil {
		return err
	}
	weave.GetLogger(ctx).Debug("stream updated", "stream", id, "height", height)
	return nil
}

// BalanceOf returns what given party may claim from the stream at the
// current height.
func (c *Controller) BalanceOf(ctx weave.Context, db weave.ReadOnlyKVStore, id uint64, who weave.Address) (uint64, error) {
	s, err := c.bucket.GetStream(db, id)
	if err != nil {
		return 0, err
	}
	height, err := c.clock.Height(ctx)
	if err != nil {
		return 0, err
	}
	return Entitlement(s, who, height), nil
}

// Stream returns the stream with given id.
func (c *Controller) Stream(db weave.ReadOnlyKVStore, id uint64) (*Stream, error) {
	return c.bucket.GetStream(db, id)
}

// StreamsBySender returns ids of all streams funded by given address.
func (c *Controller) StreamsBySender(db weave.ReadOnlyKVStore, sender weave.Address) ([]uint64, error) {
	return c.bucket.IDsBySender(db, sender)
}

// StreamsByRecipient returns ids of all streams paying to given address.
func (c *Controller) StreamsByRecipient(db weave.ReadOnlyKVStore, recipient weave.Address) ([]uint64, error) {
	return c.bucket.IDsByRecipient(db, recipient)
}

func (c *Controller) transfer(db weave.KVStore, src, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := c.ledger.MoveCoins(db, src, dest, amount); err != nil {
		return errors.Wrap(err, "transfer")
	}
	return nil
}

// isCounterparty returns true if caller and signer are the two distinct
// parties of the stream, in any order.
func isCounterparty(s *Stream, caller, signer weave.Address) bool {
	parties := [2]weave.Address{s.Sender, s.Recipient}
	for i, p := range parties {
		if p.Equals(caller) && parties[1-i].Equals(signer) {
			return true
		}
	}
	return false
}

// checkTerms ensures new terms keep the stream consistent: the balance must
// fund the whole new schedule and the recipient must not have withdrawn
// more than the new schedule vests at the current height.
func checkTerms(s *Stream, ppb uint64, tf Timeframe, height uint64) error {
	if err := tf.Validate(); err != nil {
		return errors.Wrap(err, "timeframe")
	}
	if err := checkFunded(s.Balance, ppb, tf); err != nil {
		if errors.ErrOverflow.Is(err) {
			return err
		}
		return errors.Wrap(errors.ErrState, err.Error())
	}
	vested, err := vestedAmount(ppb, tf, height)
	if err != nil {
		return err
	}
	if vested < s.WithdrawnBalance {
		return errors.Wrapf(errors.ErrState, "new terms vest %d, already withdrawn %d", vested, s.WithdrawnBalance)
	}
	return nil
}
