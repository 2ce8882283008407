package stream

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/gconf"
	"github.com/iov-one/vesting/x/cash"
)

const optKey = "stream"

// GenesisStream is used to parse the json from genesis file. The whole
// balance is minted into the custody account.
type GenesisStream struct {
	Sender          weave.Address `json:"sender"`
	Recipient       weave.Address `json:"recipient"`
	Balance         uint64        `json:"balance"`
	PaymentPerBlock uint64        `json:"payment_per_block"`
	Timeframe       Timeframe     `json:"timeframe"`
}

// Initializer fulfils the Initializer interface to load the configuration
// and the initial streams from the genesis file.
type Initializer struct {
	// Minter issues the custody funds of genesis streams. The default cash
	// controller is used when nil.
	Minter cash.CoinMinter
}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse the configuration and the initial streams and
// save them to the database.
func (i Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// The default custody is used.
	default:
		return errors.Wrap(err, "init configuration")
	}

	var streams []GenesisStream
	if err := opts.ReadOptions(optKey, &streams); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(streams) == 0 {
		return nil
	}

	minter := i.Minter
	if minter == nil {
		minter = cash.NewController(cash.NewBucket())
	}
	custody, err := loadCustody(db)
	if err != nil {
		return err
	}
	bucket := NewBucket()
	for n, gs := range streams {
		tf := gs.Timeframe
		s := &Stream{
			Sender:          gs.Sender,
			Recipient:       gs.Recipient,
			Balance:         gs.Balance,
			PaymentPerBlock: gs.PaymentPerBlock,
			Timeframe:       &tf,
		}
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
		if err := checkFunded(gs.Balance, gs.PaymentPerBlock, tf); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
		if _, err := bucket.Create(db, s); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
		if gs.Balance == 0 {
			continue
		}
		if err := minter.IssueCoins(db, custody, gs.Balance); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
	}
	return nil
}
