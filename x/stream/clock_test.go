package stream

import (
	"context"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestContextClock(t *testing.T) {
	cases := map[string]struct {
		ctx     weave.Context
		want    uint64
		wantErr *errors.Error
	}{
		"height set":      {ctx: weave.WithHeight(context.Background(), 42), want: 42},
		"genesis height":  {ctx: weave.WithHeight(context.Background(), 0), want: 0},
		"height missing":  {ctx: context.Background(), wantErr: errors.ErrHuman},
		"negative height": {ctx: weave.WithHeight(context.Background(), -1), wantErr: errors.ErrHuman},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ContextClock{}.Height(tc.ctx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
