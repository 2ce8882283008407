package stream

import (
	"encoding/json"
	"fmt"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/gconf"
	"github.com/iov-one/vesting/store"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
	"github.com/iov-one/vesting/x/cash"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	sender := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()
	custody := weavetest.NewCondition().Address()

	streams, err := json.Marshal([]GenesisStream{
		{
			Sender:          sender,
			Recipient:       recipient,
			Balance:         30,
			PaymentPerBlock: 3,
			Timeframe:       Timeframe{StartBlock: 10, StopBlock: 20},
		},
		{
			Sender:    recipient,
			Recipient: sender,
			Timeframe: Timeframe{StartBlock: 5, StopBlock: 5},
		},
	})
	if err != nil {
		t.Fatalf("cannot serialize streams: %s", err)
	}
	conf := []byte(fmt.Sprintf(`{"stream": {"custody": %q}}`, custody.String()))

	Convey("Test initializer", t, func() {
		db := store.MemStore()
		bank := cash.NewController(cash.NewBucket())
		opts := weave.Options{"conf": conf, "stream": streams}

		So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

		Convey("configuration is stored", func() {
			var got Configuration
			So(gconf.Load(db, packageName, &got), ShouldBeNil)
			So(got.Custody, ShouldResemble, custody)
		})

		Convey("streams are stored in order", func() {
			first, err := NewBucket().GetStream(db, 0)
			So(err, ShouldBeNil)
			So(first.Sender, ShouldResemble, sender)
			So(first.Balance, ShouldEqual, 30)
			So(first.GetTimeframe(), ShouldResemble, Timeframe{StartBlock: 10, StopBlock: 20})

			second, err := NewBucket().GetStream(db, 1)
			So(err, ShouldBeNil)
			So(second.Sender, ShouldResemble, recipient)
		})

		Convey("funds are minted into the custody", func() {
			coins, err := bank.Balance(db, custody)
			So(err, ShouldBeNil)
			So(coins, ShouldEqual, 30)

			coins, err = bank.Balance(db, sender)
			So(err, ShouldBeNil)
			So(coins, ShouldEqual, 0)
		})

		Convey("genesis streams can be withdrawn", func() {
			ctrl := NewController(bank, ContextClock{})
			got, err := ctrl.Withdraw(atHeight(12), db, 0, recipient)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 6)
		})
	})
}

func TestGenesisErrors(t *testing.T) {
	sender := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()

	serialize := func(gs ...GenesisStream) []byte {
		raw, err := json.Marshal(gs)
		if err != nil {
			t.Fatalf("cannot serialize: %s", err)
		}
		return raw
	}

	cases := map[string]struct {
		opts    weave.Options
		wantErr *errors.Error
	}{
		"no data": {
			opts: weave.Options{},
		},
		"configuration only": {
			opts: weave.Options{"conf": []byte(fmt.Sprintf(`{"stream": {"custody": %q}}`, sender.String()))},
		},
		"invalid custody": {
			opts:    weave.Options{"conf": []byte(`{"stream": {"custody": ""}}`)},
			wantErr: errors.ErrInput,
		},
		"bad format": {
			opts:    weave.Options{"stream": []byte(`{"sender": "1234"}`)},
			wantErr: errors.ErrInput,
		},
		"sender pays itself": {
			opts: weave.Options{"stream": serialize(GenesisStream{
				Sender:    sender,
				Recipient: sender,
				Timeframe: Timeframe{StartBlock: 0, StopBlock: 1},
			})},
			wantErr: errors.ErrInput,
		},
		"underfunded schedule": {
			opts: weave.Options{"stream": serialize(GenesisStream{
				Sender:          sender,
				Recipient:       recipient,
				Balance:         5,
				PaymentPerBlock: 1,
				Timeframe:       Timeframe{StartBlock: 0, StopBlock: 10},
			})},
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestGenesisUsesGivenMinter(t *testing.T) {
	db := store.MemStore()
	bucket := cash.NewBucket()
	streams, err := json.Marshal([]GenesisStream{{
		Sender:          weavetest.NewCondition().Address(),
		Recipient:       weavetest.NewCondition().Address(),
		Balance:         7,
		PaymentPerBlock: 1,
		Timeframe:       Timeframe{StartBlock: 0, StopBlock: 7},
	}})
	assert.Nil(t, err)

	initializer := Initializer{Minter: cash.NewController(bucket)}
	assert.Nil(t, initializer.FromGenesis(weave.Options{"stream": streams}, db))

	coins, err := cash.NewController(bucket).Balance(db, DefaultCustody())
	assert.Nil(t, err)
	assert.Equal(t, uint64(7), coins)
}

func TestGenesisAfterAccounts(t *testing.T) {
	sender := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()

	accounts, err := json.Marshal([]cash.GenesisAccount{{Address: sender, Coins: 50}})
	assert.Nil(t, err)
	streams, err := json.Marshal([]GenesisStream{{
		Sender:          sender,
		Recipient:       recipient,
		Balance:         10,
		PaymentPerBlock: 1,
		Timeframe:       Timeframe{StartBlock: 0, StopBlock: 10},
	}})
	assert.Nil(t, err)

	db := store.MemStore()
	genesis := weave.ChainInitializers(cash.Initializer{}, Initializer{})
	assert.Nil(t, genesis.FromGenesis(weave.Options{"cash": accounts, "stream": streams}, db))

	bank := cash.NewController(cash.NewBucket())
	coins, err := bank.Balance(db, sender)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), coins)

	// The genesis account pays for a new stream on top of the genesis one.
	ctrl := NewController(bank, ContextClock{})
	id, err := ctrl.Create(atHeight(1), db, sender, recipient, 20, Timeframe{StartBlock: 0, StopBlock: 10}, 2)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)

	coins, err = bank.Balance(db, sender)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30), coins)

	// A failing initializer stops the chain.
	bad := weave.Options{"cash": []byte(`"not a list"`), "stream": streams}
	err = weave.ChainInitializers(cash.Initializer{}, Initializer{}).FromGenesis(bad, store.MemStore())
	assert.IsErr(t, errors.ErrInput, err)
}
