package app

import (
	"github.com/iov-one/heirloom"
	amino "github.com/tendermint/go-amino"
)

type testMsg struct {
	Route string `json:"route"`
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

func (m *testMsg) Path() string    { return m.Route }
func (m *testMsg) Validate() error { return nil }

type testTx struct {
	msg heirloom.Msg
}

func (t testTx) GetMsg() (heirloom.Msg, error) { return t.msg, nil }

var testCdc = amino.NewCodec()

func init() {
	testCdc.RegisterConcrete(&testMsg{}, "test/Msg", nil)
}

func testDecoder(raw []byte) (heirloom.Tx, error) {
	var msg testMsg
	if err := testCdc.UnmarshalBinaryBare(raw, &msg); err != nil {
		return nil, err
	}
	return testTx{msg: &msg}, nil
}

func encodeTestMsg(m *testMsg) []byte {
	return testCdc.MustMarshalBinaryBare(m)
}

// countingHandler counts calls and writes the message key/value on deliver.
type countingHandler struct {
	calls *int
	err   error
}

func newCountingHandler(err error) countingHandler {
	return countingHandler{calls: new(int), err: err}
}

func (h countingHandler) Check(heirloom.Context, heirloom.KVStore, heirloom.Tx) (*heirloom.CheckResult, error) {
	*h.calls++
	if h.err != nil {
		return nil, h.err
	}
	return &heirloom.CheckResult{GasAllocated: 10}, nil
}

func (h countingHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	*h.calls++
	if h.err != nil {
		return nil, h.err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if m, ok := msg.(*testMsg); ok && len(m.Key) > 0 {
		if err := db.Set(m.Key, m.Value); err != nil {
			return nil, err
		}
	}
	return &heirloom.DeliverResult{Log: "ok"}, nil
}

// countingDecorator counts every call in and out.
type countingDecorator struct {
	calls *int
}

func newCountingDecorator() countingDecorator {
	return countingDecorator{calls: new(int)}
}

func (d countingDecorator) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	*d.calls++
	res, err := next.Check(ctx, db, tx)
	*d.calls++
	return res, err
}

func (d countingDecorator) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	*d.calls++
	res, err := next.Deliver(ctx, db, tx)
	*d.calls++
	return res, err
}

// panicAtHeight panics when the block height is at least the given value.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	if h, _ := heirloom.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	if h, _ := heirloom.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}
