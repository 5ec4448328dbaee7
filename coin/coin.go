package coin

import (
	"fmt"

	"github.com/iov-one/heirloom/errors"
)

// NativeAssetID identifies the chain native unit. It needs no opt-in.
const NativeAssetID uint64 = 0

// Coin is an amount of a single asset.
type Coin struct {
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount"`
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, assetID uint64) Coin {
	return Coin{
		AssetID: assetID,
		Amount:  amount,
	}
}

// Native returns the given amount of the native unit.
func Native(amount uint64) Coin {
	return NewCoin(amount, NativeAssetID)
}

// IsNative returns true if this coin is of the chain native unit.
func (c Coin) IsNative() bool {
	return c.AssetID == NativeAssetID
}

// IsZero returns true when the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// SameType returns true if both coins are of the same asset.
func (c Coin) SameType(o Coin) bool {
	return c.AssetID == o.AssetID
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsGTE returns true if c is of the same asset and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// Add combines two coins of the same asset. An error is returned when the
// assets differ or when the sum does not fit.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrType, "adding asset %d to %d", o.AssetID, c.AssetID)
	}
	sum := c.Amount + o.Amount
	if sum < c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d + %d", c.Amount, o.Amount)
	}
	return Coin{AssetID: c.AssetID, Amount: sum}, nil
}

// Subtract takes o away from c. Coins never go negative, taking more than is
// available returns ErrInsufficientAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrType, "subtracting asset %d from %d", o.AssetID, c.AssetID)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%d < %d", c.Amount, o.Amount)
	}
	return Coin{AssetID: c.AssetID, Amount: c.Amount - o.Amount}, nil
}

// Validate is always true for a coin as both fields are unsigned. Zero coins
// are rejected by Coins.Validate when stored.
func (c Coin) Validate() error {
	return nil
}

// String provides a human readable representation of the coin.
func (c Coin) String() string {
	if c.IsNative() {
		return fmt.Sprintf("%d", c.Amount)
	}
	return fmt.Sprintf("%d#%d", c.Amount, c.AssetID)
}
