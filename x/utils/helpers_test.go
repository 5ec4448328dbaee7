package utils

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

type pathMsg string

func (m pathMsg) Path() string  { return string(m) }
func (pathMsg) Validate() error { return nil }

type pathTx struct {
	msg heirloom.Msg
}

func (t pathTx) GetMsg() (heirloom.Msg, error) {
	if t.msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return t.msg, nil
}

// writeHandler writes a key and then returns the configured error.
type writeHandler struct {
	key []byte
	err error
}

var _ heirloom.Handler = writeHandler{}

func (h writeHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if err := db.Set(h.key, []byte("checked")); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &heirloom.CheckResult{Log: "checked"}, nil
}

func (h writeHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	if err := db.Set(h.key, []byte("delivered")); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &heirloom.DeliverResult{Log: "delivered"}, nil
}

type panicHandler struct{}

var _ heirloom.Handler = panicHandler{}

func (p panicHandler) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	panic("deliver panic")
}
