package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/store"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
	"github.com/iov-one/vesting/x/utils"
)

func TestChain(t *testing.T) {
	var (
		d1, d2 weavetest.Decorator
		h      weavetest.Handler
	)

	stack := ChainDecorators(
		&d1,
		utils.NewLogging(),
		nil,
		utils.NewRecovery(),
		&d2,
	).WithHandler(&h)

	ctx := weave.WithHeight(context.Background(), 4)
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, store.MemStore(), tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, store.MemStore(), tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	d1.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanic(t *testing.T) {
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(panicHandler{})

	_, err := stack.Deliver(context.Background(), store.MemStore(), nil)
	assert.IsErr(t, errors.ErrPanic, err)
}

type panicHandler struct{}

func (panicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic("deliver")
}
