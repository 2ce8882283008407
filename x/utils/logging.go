package utils

import (
	"time"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Logging writes a log entry for every processed transaction. Failures are
// logged as errors together with their ABCI code. Successful checks are
// logged at debug level, successful delivers at info level.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

// logResult emits an entry even when msg is empty, the keys carry the
// information.
func logResult(ctx weave.Context, tx weave.Tx, took time.Duration, msg string, err error, check bool) {
	keyvals := []interface{}{"duration", took / time.Microsecond}
	if tx != nil {
		keyvals = append(keyvals, "path", weave.GetPath(tx))
	}
	if height, ok := weave.GetHeight(ctx); ok {
		keyvals = append(keyvals, "height", height)
	}
	logger := weave.GetLogger(ctx).With(keyvals...)

	switch {
	case err != nil:
		code, _ := errors.ABCIInfo(err, false)
		logger.Error(msg, "code", code, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
