package stream

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Clock provides the current block height.
type Clock interface {
	Height(weave.Context) (uint64, error)
}

// ContextClock reads the block height from the context, as set by the
// application for every block.
type ContextClock struct{}

var _ Clock = ContextClock{}

func (ContextClock) Height(ctx weave.Context) (uint64, error) {
	h, ok := weave.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	if h < 0 {
		return 0, errors.Wrapf(errors.ErrHuman, "negative block height %d", h)
	}
	return uint64(h), nil
}
