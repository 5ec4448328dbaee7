package bank

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&OptInMsg{}, NewOptInHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ heirloom.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &heirloom.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx heirloom.Context, tx heirloom.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// OptInHandler makes the main signer wallet accept an asset.
type OptInHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ heirloom.Handler = OptInHandler{}

// NewOptInHandler creates a handler for OptInMsg
func NewOptInHandler(auth x.Authenticator, control Controller) OptInHandler {
	return OptInHandler{
		auth:    auth,
		control: control,
	}
}

func (h OptInHandler) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: optInTxCost}, nil
}

func (h OptInHandler) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.OptIn(store, signer, msg.AssetID); err != nil {
		return nil, err
	}
	return &heirloom.DeliverResult{}, nil
}

func (h OptInHandler) validate(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*OptInMsg, heirloom.Address, error) {
	var msg OptInMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	signer := x.MainSignerAddress(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	if _, err := h.control.Asset(store, msg.AssetID); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}
