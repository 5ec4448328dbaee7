package utils

import (
	"time"

	"github.com/iov-one/heirloom"
)

// Logging writes one log line per transaction with its duration and the
// handler log. Failures are logged as errors. Successful checks go to
// debug and successful deliveries to info.
type Logging struct{}

var _ heirloom.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	l := logged{ctx: ctx, start: start, err: err}
	if err == nil {
		l.log = res.Log
	}
	l.write(false)
	return res, err
}

func (Logging) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	l := logged{ctx: ctx, start: start, err: err}
	if err == nil {
		l.log = res.Log
	}
	l.write(true)
	return res, err
}

type logged struct {
	ctx   heirloom.Context
	start time.Time
	log   string
	err   error
}

// write emits the entry even when the handler log is empty, the context
// fields and the duration are still worth having.
func (l logged) write(deliver bool) {
	logger := heirloom.GetLogger(l.ctx).With("duration", time.Since(l.start)/time.Microsecond)
	switch {
	case l.err != nil:
		logger.Error(l.log, "err", l.err)
	case deliver:
		logger.Info(l.log)
	default:
		logger.Debug(l.log)
	}
}
