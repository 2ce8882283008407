package cash

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// GenesisAccount is a wallet funded at genesis. The address is hex encoded.
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Coins   uint64        `json:"coins"`
}

// Initializer creates the wallets listed under the "cash" genesis key.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, acc := range accounts {
		wallet, err := WalletWith(acc.Address, acc.Coins)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Save(db, wallet); err != nil {
			return errors.Wrapf(err, "save account %d", i)
		}
	}
	return nil
}
