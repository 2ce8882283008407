package cash

import (
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/store"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
)

func balance(t testing.TB, kv weave.ReadOnlyKVStore, addr weave.Address) uint64 {
	t.Helper()
	coins, err := NewController(NewBucket()).Balance(kv, addr)
	assert.Nil(t, err)
	return coins
}

func TestIssueCoins(t *testing.T) {
	kv := store.MemStore()
	addr := weavetest.NewCondition().Address()
	addr2 := weavetest.NewCondition().Address()

	controller := NewController(NewBucket())

	assert.Equal(t, uint64(0), balance(t, kv, addr))

	assert.Nil(t, controller.IssueCoins(kv, addr, 500))
	assert.Nil(t, controller.IssueCoins(kv, addr, 250))
	assert.Equal(t, uint64(750), balance(t, kv, addr))
	assert.Equal(t, uint64(0), balance(t, kv, addr2))

	// overflow is rejected and the wallet is unchanged
	err := controller.IssueCoins(kv, addr, ^uint64(0))
	assert.IsErr(t, errors.ErrOverflow, err)
	assert.Equal(t, uint64(750), balance(t, kv, addr))
}

func TestMoveCoins(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	addr2 := weavetest.NewCondition().Address()

	cases := map[string]struct {
		issue    uint64
		src      weave.Address
		dest     weave.Address
		amount   uint64
		wantErr  *errors.Error
		wantSrc  uint64
		wantDest uint64
	}{
		"proper move": {
			issue:    1000,
			src:      addr,
			dest:     addr2,
			amount:   300,
			wantSrc:  700,
			wantDest: 300,
		},
		"send everything": {
			issue:    300,
			src:      addr,
			dest:     addr2,
			amount:   300,
			wantSrc:  0,
			wantDest: 300,
		},
		"cannot send from an empty account": {
			src:     addr,
			dest:    addr2,
			amount:  5,
			wantErr: errors.ErrEmpty,
		},
		"cannot send zero": {
			issue:   1000,
			src:     addr,
			dest:    addr2,
			amount:  0,
			wantErr: errors.ErrAmount,
			wantSrc: 1000,
		},
		"cannot send too much": {
			issue:   100,
			src:     addr,
			dest:    addr2,
			amount:  101,
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"send to self keeps the balance": {
			issue:    100,
			src:      addr,
			dest:     addr,
			amount:   40,
			wantSrc:  100,
			wantDest: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			controller := NewController(NewBucket())
			if tc.issue > 0 {
				assert.Nil(t, controller.IssueCoins(kv, tc.src, tc.issue))
			}

			err := controller.MoveCoins(kv, tc.src, tc.dest, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantSrc, balance(t, kv, tc.src))
			assert.Equal(t, tc.wantDest, balance(t, kv, tc.dest))
		})
	}
}

func TestMoveCoinsOverflow(t *testing.T) {
	kv := store.MemStore()
	addr := weavetest.NewCondition().Address()
	addr2 := weavetest.NewCondition().Address()
	controller := NewController(NewBucket())

	assert.Nil(t, controller.IssueCoins(kv, addr, 10))
	assert.Nil(t, controller.IssueCoins(kv, addr2, ^uint64(0)-5))

	err := controller.MoveCoins(kv, addr, addr2, 10)
	assert.IsErr(t, errors.ErrOverflow, err)
}
