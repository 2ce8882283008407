package stream

import (
	"testing"

	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
	"github.com/iov-one/vesting/x/cash"
)

func TestStreamsSurviveCommit(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	bank := cash.NewController(cash.NewBucket())
	ctrl := NewController(bank, ContextClock{})
	bucket := NewBucket()
	sender, recipient := newParty(), newParty()
	tf := Timeframe{StartBlock: 0, StopBlock: 10}

	block := db.CacheWrap()
	assert.Nil(t, bank.IssueCoins(block, sender.addr, 100))
	id, err := ctrl.Create(atHeight(1), block, sender.addr, recipient.addr, 20, tf, 2)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Nil(t, block.Write())

	commit, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), commit.Version)

	// A second stream is written to the working state but never committed.
	block = db.CacheWrap()
	_, err = ctrl.Create(atHeight(2), block, sender.addr, recipient.addr, 20, tf, 2)
	assert.Nil(t, err)
	assert.Nil(t, block.Write())

	assert.Nil(t, db.LoadLatestVersion())
	latest, err := db.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, commit, latest)

	block = db.CacheWrap()
	s, err := bucket.GetStream(block, 0)
	assert.Nil(t, err)
	assert.Equal(t, sender.addr, s.Sender)
	assert.Equal(t, uint64(20), s.Balance)

	_, err = bucket.GetStream(block, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
	next, err := bucket.NextID(block)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), next)

	// The counter continues from the committed value.
	id, err = ctrl.Create(atHeight(3), block, sender.addr, recipient.addr, 20, tf, 2)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)

	coins, err := bank.Balance(block, sender.addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(60), coins)
}
