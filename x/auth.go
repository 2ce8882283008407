package x

import (
	weave "github.com/iov-one/vesting"
)

// Authenticator tells a handler which conditions signed the current
// transaction. Handlers receive it in their constructor so that tests can
// replace signature checks with a static set of signers.
type Authenticator interface {
	// GetConditions returns every condition that authorized the
	// transaction. The first one is the main signer.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress reports whether any of the conditions resolves to addr.
	HasAddress(weave.Context, weave.Address) bool
}

// MainSigner returns the first condition reported by auth, or nil when the
// transaction is not signed.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
