package vesting

import (
	"context"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block height and the logger of the request being
// processed. Every value can be set at most once, so that a handler cannot
// change what an outer layer decided.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyLogger
)

var (
	// DefaultLogger is returned for a context without a logger.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether the chain id declared in the genesis
	// file is acceptable.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight returns a context at the given block height. It panics if the
// height was already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the block height and false if none was set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithLogger returns a context using the given logger.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger of the context or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
