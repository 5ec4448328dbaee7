package heirloom

import (
	"github.com/iov-one/heirloom/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the successful outcome of a Deliver call. Failures are
// always reported as errors.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the new locked total
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags are indexed by tendermint, so clients can search transactions
	Tags []common.KVPair
}

// ToABCI converts the result into its ABCI response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: d.Tags,
	}
}

// CheckResult is the successful outcome of a Check call.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// ToABCI converts the result into its ABCI response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the ABCI response of a Deliver call.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns the ABCI response of a Check call.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverTxError converts err into a failed DeliverTx response. In debug
// mode the log carries the full error with its stack trace.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := failure("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts err into a failed CheckTx response.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := failure("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + phase + " tx: " + log
}

// ParseDeliverOrError turns a DeliverTx response back into a result, or into
// an error carrying the registered root error of the response code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{Data: res.Data, Log: res.Log, Tags: res.Tags}, nil
}
