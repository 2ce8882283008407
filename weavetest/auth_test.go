package weavetest

import (
	"context"
	"reflect"
	"testing"

	weave "github.com/iov-one/vesting"
)

func TestAuth(t *testing.T) {
	sender, recipient, custody := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth      *Auth
		wantConds []weave.Condition
	}{
		"nobody": {
			auth:      &Auth{},
			wantConds: nil,
		},
		"single signer": {
			auth:      &Auth{Signer: sender},
			wantConds: []weave.Condition{sender},
		},
		"many signers": {
			auth:      &Auth{Signers: []weave.Condition{sender, recipient}},
			wantConds: []weave.Condition{sender, recipient},
		},
		"signer goes last": {
			auth:      &Auth{Signer: custody, Signers: []weave.Condition{sender, recipient}},
			wantConds: []weave.Condition{sender, recipient, custody},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.auth.GetConditions(nil); !reflect.DeepEqual(tc.wantConds, got) {
				t.Fatalf("want %v conditions, got %v", tc.wantConds, got)
			}
			for _, c := range tc.wantConds {
				if !tc.auth.HasAddress(nil, c.Address()) {
					t.Errorf("%s address must be present", c)
				}
			}
			if tc.auth.HasAddress(nil, NewCondition().Address()) {
				t.Fatal("random condition must not be present")
			}
		})
	}
}

func TestAuthDoesNotChangeSigners(t *testing.T) {
	signers := make([]weave.Condition, 1, 4)
	signers[0] = NewCondition()
	a := Auth{Signer: NewCondition(), Signers: signers}

	_ = a.GetConditions(nil)
	if extended := signers[:2]; extended[1] != nil {
		t.Fatal("signer was written into the signers array")
	}
}

func TestCtxAuth(t *testing.T) {
	sender, recipient := NewCondition(), NewCondition()
	streams := CtxAuth{Key: "streams"}
	other := CtxAuth{Key: "other"}

	ctx := context.Background()
	if got := streams.GetConditions(ctx); got != nil {
		t.Fatalf("want no conditions, got %v", got)
	}

	ctx = streams.SetConditions(ctx, sender, recipient)
	if got := streams.GetConditions(ctx); !reflect.DeepEqual([]weave.Condition{sender, recipient}, got) {
		t.Fatalf("unexpected conditions: %v", got)
	}
	if !streams.HasAddress(ctx, recipient.Address()) {
		t.Fatal("recipient address must be present")
	}
	if streams.HasAddress(ctx, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
	if other.HasAddress(ctx, sender.Address()) {
		t.Fatal("conditions must not leak between keys")
	}
}
