package stream

import (
	"context"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/crypto"
	"github.com/iov-one/vesting/store"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
	"github.com/iov-one/vesting/x/cash"
)

// party is a stream participant that can sign new terms.
type party struct {
	key  *crypto.PrivateKeySecp256k1
	cond weave.Condition
	addr weave.Address
}

func newParty() party {
	key := weavetest.NewSecpKey()
	cond := key.PublicKey().Condition()
	return party{key: key, cond: cond, addr: cond.Address()}
}

// fixture is a funded sender, a recipient and a controller over an in
// memory store, using the default custody account.
type fixture struct {
	db        weave.CacheableKVStore
	bank      cash.BaseController
	ctrl      *Controller
	sender    party
	recipient party
}

func newFixture(t testing.TB, senderFunds uint64) *fixture {
	t.Helper()
	f := &fixture{
		db:        store.MemStore(),
		bank:      cash.NewController(cash.NewBucket()),
		sender:    newParty(),
		recipient: newParty(),
	}
	f.ctrl = NewController(f.bank, ContextClock{})
	if senderFunds > 0 {
		assert.Nil(t, f.bank.IssueCoins(f.db, f.sender.addr, senderFunds))
	}
	return f
}

func (f *fixture) create(t testing.TB, initial uint64, tf Timeframe, ppb uint64) uint64 {
	t.Helper()
	id, err := f.ctrl.Create(context.Background(), f.db, f.sender.addr, f.recipient.addr, initial, tf, ppb)
	assert.Nil(t, err)
	return id
}

func (f *fixture) coins(t testing.TB, addr weave.Address) uint64 {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	assert.Nil(t, err)
	return coins
}

func (f *fixture) stream(t testing.TB, id uint64) *Stream {
	t.Helper()
	s, err := f.ctrl.Stream(f.db, id)
	assert.Nil(t, err)
	return s
}

func (f *fixture) sign(t testing.TB, signer party, id uint64, ppb uint64, tf Timeframe) []byte {
	t.Helper()
	digest, err := f.ctrl.HashStream(f.db, id, ppb, tf)
	assert.Nil(t, err)
	sig, err := SignTerms(signer.key, digest)
	assert.Nil(t, err)
	return sig
}

func atHeight(h int64) weave.Context {
	return weave.WithHeight(context.Background(), h)
}
