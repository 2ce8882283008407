package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()

	var (
		msg = &weavetest.Msg{RoutePath: "test/right"}
		tx  = &weavetest.Tx{Msg: msg}

		right = &weavetest.Handler{}
		wrong = &weavetest.Handler{}
	)

	r.Handle("test/right", right)
	r.Handle("test/wrong", wrong)

	if _, err := r.Check(context.Background(), nil, tx); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if _, err := r.Deliver(context.Background(), nil, tx); err != nil {
		t.Fatalf("deliver failed: %s", err)
	}
	if right.CallCount() != 2 {
		t.Fatalf("want 2 calls, got %d", right.CallCount())
	}
	if wrong.CallCount() != 0 {
		t.Fatalf("wrong handler called %d times", wrong.CallCount())
	}
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/secret"}}

	_, err := r.Check(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterBrokenMessage(t *testing.T) {
	r := NewRouter()
	tx := &weavetest.Tx{Err: errors.ErrMsg}

	_, err := r.Deliver(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestRouterInvalidRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("stream/create", &weavetest.Handler{})

	cases := map[string]struct {
		path string
		h    weave.Handler
	}{
		"duplicated path": {path: "stream/create", h: &weavetest.Handler{}},
		"invalid path":    {path: "l:7", h: &weavetest.Handler{}},
		"empty path":      {path: "", h: &weavetest.Handler{}},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Panics(t, func() { r.Handle(tc.path, tc.h) })
		})
	}
}
