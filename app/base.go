package app

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a StoreApp that also decodes and runs transactions.
type BaseApp struct {
	*StoreApp
	decoder heirloom.TxDecoder
	handler heirloom.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp runs every decoded transaction through handler. With debug
// set, error logs returned to the client carry stack traces.
func NewBaseApp(store *StoreApp, decoder heirloom.TxDecoder, handler heirloom.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx runs the transaction against the deliver cache.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return heirloom.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext(tx, "deliver_tx"), b.DeliverStore(), tx)
	return heirloom.DeliverOrError(res, err, b.debug)
}

// CheckTx runs the transaction against the check cache.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return heirloom.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext(tx, "check_tx"), b.CheckStore(), tx)
	return heirloom.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(tx heirloom.Tx, call string) heirloom.Context {
	return heirloom.WithLogInfo(b.BlockContext(), "call", call, "path", heirloom.GetPath(tx))
}

// decode turns a panicking decoder into an ErrPanic.
func (b BaseApp) decode(raw []byte) (tx heirloom.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
