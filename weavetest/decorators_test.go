package weavetest

import (
	"testing"

	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestDecorator(t *testing.T) {
	var (
		d    Decorator
		next Handler
	)

	_, err := d.Check(nil, nil, nil, &next)
	assert.Nil(t, err)
	_, err = d.Deliver(nil, nil, nil, &next)
	assert.Nil(t, err)
	assertCalls(t, &d.calls, 1, 1)
	assertCalls(t, &next.calls, 1, 1)

	// A failing decorator never reaches the next handler.
	d.CheckErr = errors.ErrUnauthorized
	d.DeliverErr = errors.ErrNotFound
	_, err = d.Check(nil, nil, nil, &next)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = d.Deliver(nil, nil, nil, &next)
	assert.IsErr(t, errors.ErrNotFound, err)
	assertCalls(t, &d.calls, 2, 2)
	assertCalls(t, &next.calls, 1, 1)
}
