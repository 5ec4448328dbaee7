package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator counting processed transactions and measuring
// their duration, labeled by message path and result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ heirloom.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heirloom",
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "heirloom",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	reg.MustRegister(m.txs, m.duration)
	return m
}

// Check records the result of a check call
func (m *Metrics) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", heirloom.GetPath(tx), start, err)
	return res, err
}

// Deliver records the result of a deliver call
func (m *Metrics) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", heirloom.GetPath(tx), start, err)
	return res, err
}

func (m *Metrics) observe(phase, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
