package stream

import (
	"github.com/iov-one/vesting/errors"
)

// Stream reserves 1300~1309 error codes
var (
	// ErrInvalidSignature is returned when the counterparty signature does
	// not match the proposed terms.
	ErrInvalidSignature = errors.Register(1300, "invalid signature")

	// ErrStreamStillActive is returned when the sender requests a refund
	// before the stream window has closed.
	ErrStreamStillActive = errors.Register(1301, "stream still active")
)

// Contract codes as exposed to stream clients.
const (
	CodeUnauthorized      uint32 = 0
	CodeInvalidSignature  uint32 = 1
	CodeStreamStillActive uint32 = 2
)

// ContractCode maps an error returned by this package to the contract error
// code. False is returned for errors that have no contract code. Those are
// reported using the ABCI code only.
func ContractCode(err error) (uint32, bool) {
	switch {
	case err == nil:
		return 0, false
	case ErrInvalidSignature.Is(err):
		return CodeInvalidSignature, true
	case ErrStreamStillActive.Is(err):
		return CodeStreamStillActive, true
	case errors.ErrUnauthorized.Is(err):
		return CodeUnauthorized, true
	default:
		return 0, false
	}
}
