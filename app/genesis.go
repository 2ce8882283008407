package app

import (
	"encoding/json"
	"io/ioutil"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID    string        `json:"chain_id"`
	AppOptions weave.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	return gen, nil
}

const chainIDKey = "_chain_id"

// InitChain stores the chain id and passes the application options to the
// initializer. The chain can be initialized only once.
func InitChain(kv weave.KVStore, gen Genesis, init weave.Initializer) error {
	if err := saveChainID(kv, gen.ChainID); err != nil {
		return err
	}
	if err := init.FromGenesis(gen.AppOptions, kv); err != nil {
		return errors.Wrap(err, "initialize from genesis")
	}
	return nil
}

// LoadChainID returns the chain id stored if any
func LoadChainID(kv weave.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	has, err := kv.Has(k)
	if err != nil {
		return err
	}
	if has {
		return errors.Wrap(errors.ErrImmutable, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
