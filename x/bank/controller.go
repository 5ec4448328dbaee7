package bank

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

// Controller is the functionality needed by other extensions to move value.
type Controller interface {
	// Balance returns the coins held by an address.
	Balance(heirloom.ReadOnlyKVStore, heirloom.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest.
	MoveCoins(db heirloom.KVStore, src, dest heirloom.Address, amount coin.Coin) error

	// CoinMint creates new coins in the destination wallet.
	CoinMint(db heirloom.KVStore, dest heirloom.Address, amount coin.Coin) error

	// OptIn marks the wallet as accepting the asset.
	OptIn(db heirloom.KVStore, addr heirloom.Address, assetID uint64) error

	// IsOptedIn returns true if the wallet accepts the asset.
	IsOptedIn(db heirloom.ReadOnlyKVStore, addr heirloom.Address, assetID uint64) (bool, error)

	// Asset returns a registered asset, or ErrNotFound.
	Asset(db heirloom.ReadOnlyKVStore, assetID uint64) (*Asset, error)
}

// BaseController is the default Controller, working directly on wallet
// records.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns the default bank controller.
func NewController() BaseController {
	return BaseController{}
}

// Balance returns the coins held by addr. An unknown address holds nothing.
func (BaseController) Balance(db heirloom.ReadOnlyKVStore, addr heirloom.Address) (coin.Coins, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails. Secondary assets can only be received by wallets that
// opted in.
func (c BaseController) MoveCoins(db heirloom.KVStore, src, dest heirloom.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !amount.IsNative() {
		if _, err := c.Asset(db, amount.AssetID); err != nil {
			return err
		}
	}

	// check the recipient first, so a rejected transfer writes nothing
	if ok, err := c.IsOptedIn(db, dest, amount.AssetID); err != nil {
		return err
	} else if !ok {
		return errors.Wrapf(errors.ErrState, "%s did not opt in to asset %d", dest, amount.AssetID)
	}

	sender, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, wants %s",
			src, sender.Coins.Amount(amount.AssetID), amount)
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if err := saveWallet(db, src, sender); err != nil {
		return err
	}

	// load after saving, so sending to self works
	recipient, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return saveWallet(db, dest, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db heirloom.KVStore, dest heirloom.Address, amount coin.Coin) error {
	if !amount.IsNative() {
		if _, err := c.Asset(db, amount.AssetID); err != nil {
			return err
		}
	}
	w, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	if !w.HasOptedIn(amount.AssetID) {
		return errors.Wrapf(errors.ErrState, "%s did not opt in to asset %d", dest, amount.AssetID)
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return saveWallet(db, dest, w)
}

// OptIn marks the wallet as accepting the asset. Opting in twice is a noop.
func (c BaseController) OptIn(db heirloom.KVStore, addr heirloom.Address, assetID uint64) error {
	if assetID == coin.NativeAssetID {
		return nil
	}
	if _, err := c.Asset(db, assetID); err != nil {
		return err
	}
	w, err := loadWallet(db, addr)
	if err != nil {
		return err
	}
	if w.HasOptedIn(assetID) {
		return nil
	}
	w.OptedIn = append(w.OptedIn, assetID)
	return saveWallet(db, addr, w)
}

// IsOptedIn returns true if the wallet accepts the asset.
func (BaseController) IsOptedIn(db heirloom.ReadOnlyKVStore, addr heirloom.Address, assetID uint64) (bool, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return false, err
	}
	return w.HasOptedIn(assetID), nil
}

// Asset returns a registered asset, or ErrNotFound.
func (BaseController) Asset(db heirloom.ReadOnlyKVStore, assetID uint64) (*Asset, error) {
	return loadAsset(db, assetID)
}
