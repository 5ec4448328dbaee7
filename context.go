package heirloom

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/heirloom/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the standard context. The helpers below store the block data
// in it, each value may be set once.
type Context = context.Context

type contextKey int

const (
	heightKey contextKey = iota
	blockTimeKey
	chainIDKey
	loggerKey
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 letters, digits, '_' or '-'.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight panics when the height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Cannot modify height")
	}
	return context.WithValue(ctx, heightKey, height)
}

// GetHeight returns false when no height was set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime stores t in UTC. It panics when the time is already set.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := ctx.Value(blockTimeKey).(time.Time); ok {
		panic("Cannot modify block time")
	}
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time of the current block. A missing time is a
// programming error: a handler guessing the time would write a state other
// nodes cannot reproduce.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok {
		return t, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return t, nil
}

// Now is BlockTime in whole seconds.
func Now(ctx Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// WithChainID panics for an invalid id or when an id is already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(chainIDKey) != nil {
		panic("Cannot modify chain id")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain id")
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id was set. The app sets it before
// running any transaction.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("Chain id not present in the context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds keyvals to every line logged from the returned context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
