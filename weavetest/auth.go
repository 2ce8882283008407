package weavetest

import (
	"context"
	"fmt"

	weave "github.com/iov-one/vesting"
)

// Auth is an x.Authenticator that always reports the same, statically
// configured signers. Signer and Signers are equal in power, Signer exists
// for the common case of a single signing party.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]weave.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator that reads the signers from the context,
// so that every request can be signed by a different party.
type CtxAuth struct {
	// Key distinguishes signers set by different CtxAuth instances.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context signed by the given conditions.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	switch val := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []weave.Condition:
		return val
	default:
		panic(fmt.Sprintf("want []weave.Condition, got %T", val))
	}
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
