package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/store"
	"github.com/iov-one/vesting/weavetest/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

func TestLoadGenesisAndInitChain(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cases := map[string]struct {
		content     string
		wantLoadErr *errors.Error
		wantInitErr *errors.Error
		wantValue   string
	}{
		"valid genesis": {
			content:   `{"chain_id": "test-chain", "app_state": {"dummy": "hello"}}`,
			wantValue: "hello",
		},
		"missing options": {
			content:   `{"chain_id": "test-chain"}`,
			wantValue: "",
		},
		"invalid chain id": {
			content:     `{"chain_id": "no", "app_state": {}}`,
			wantInitErr: errors.ErrInput,
		},
		"invalid option type": {
			content:     `{"chain_id": "test-chain", "app_state": {"dummy": 7}}`,
			wantInitErr: errors.ErrInput,
		},
		"malformed json": {
			content:     `{"chain_id": `,
			wantLoadErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path := filepath.Join(dir, "genesis.json")
			require.NoError(t, ioutil.WriteFile(path, []byte(tc.content), 0600))

			gen, err := LoadGenesis(path)
			if !tc.wantLoadErr.Is(err) {
				t.Fatalf("unexpected load error: %+v", err)
			}
			if tc.wantLoadErr != nil {
				return
			}

			db := store.MemStore()
			if err := InitChain(db, gen, dummyInit{}); !tc.wantInitErr.Is(err) {
				t.Fatalf("unexpected init error: %+v", err)
			}
			if tc.wantInitErr != nil {
				return
			}

			val, err := db.Get([]byte(dummyKey))
			assert.Nil(t, err)
			assert.Equal(t, tc.wantValue, string(val))

			chainID, err := LoadChainID(db)
			assert.Nil(t, err)
			assert.Equal(t, "test-chain", chainID)

			// second initialization is not allowed
			err = InitChain(db, gen, dummyInit{})
			assert.IsErr(t, errors.ErrImmutable, err)
		})
	}
}

func TestGenesisOptionsAreRaw(t *testing.T) {
	var gen Genesis
	require.NoError(t, json.Unmarshal([]byte(`{"chain_id":"abcdef","app_state":{"cash":[1,2]}}`), &gen))
	assert.Equal(t, json.RawMessage(`[1,2]`), gen.AppOptions["cash"])
}
