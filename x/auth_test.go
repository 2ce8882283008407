package x

import (
	"context"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/weavetest"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestMainSigner(t *testing.T) {
	sender := weavetest.NewCondition()
	recipient := weavetest.NewCondition()
	signers := &weavetest.CtxAuth{Key: "signers"}

	cases := map[string]struct {
		ctx  weave.Context
		auth Authenticator
		want weave.Condition
	}{
		"unsigned": {
			ctx:  context.Background(),
			auth: &weavetest.Auth{},
			want: nil,
		},
		"static signer": {
			ctx:  context.Background(),
			auth: &weavetest.Auth{Signer: sender},
			want: sender,
		},
		"static signer goes after the others": {
			ctx:  context.Background(),
			auth: &weavetest.Auth{Signer: sender, Signers: []weave.Condition{recipient}},
			want: recipient,
		},
		"first condition stored in the context": {
			ctx:  signers.SetConditions(context.Background(), recipient, sender),
			auth: signers,
			want: recipient,
		},
		"conditions stored under another key": {
			ctx:  signers.SetConditions(context.Background(), sender),
			auth: &weavetest.CtxAuth{Key: "other"},
			want: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, MainSigner(tc.ctx, tc.auth))
			if tc.want != nil && !tc.auth.HasAddress(tc.ctx, tc.want.Address()) {
				t.Fatalf("main signer %s is not authorized", tc.want)
			}
		})
	}
}
