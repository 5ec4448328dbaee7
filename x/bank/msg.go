package bank

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

const (
	pathSendMsg  = "bank/send"
	pathOptInMsg = "bank/opt_in"

	sendTxCost  = 100
	optInTxCost = 50

	maxMemoSize = 128
)

// SendMsg moves coins from the source wallet to the destination.
type SendMsg struct {
	Source      heirloom.Address `json:"source"`
	Destination heirloom.Address `json:"destination"`
	Amount      coin.Coin        `json:"amount"`
	Memo        string           `json:"memo"`
}

var _ heirloom.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s SendMsg) Validate() error {
	if s.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// OptInMsg makes the signer wallet accept a secondary asset.
type OptInMsg struct {
	AssetID uint64 `json:"asset_id"`
}

var _ heirloom.Msg = (*OptInMsg)(nil)

// Path returns the routing path for this message
func (OptInMsg) Path() string {
	return pathOptInMsg
}

// Validate makes sure that this is sensible
func (m OptInMsg) Validate() error {
	if m.AssetID == coin.NativeAssetID {
		return errors.Wrap(errors.ErrInput, "native unit needs no opt in")
	}
	return nil
}
