package bank

import (
	"encoding/binary"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

const (
	walletPrefix = "wallet:"
	assetPrefix  = "asset:"
)

// Wallet is the set of coins held by an address and the list of assets
// it accepts.
type Wallet struct {
	Coins   coin.Coins `json:"coins"`
	OptedIn []uint64   `json:"opted_in"`
}

// Validate ensures the coin set is normalized and every held asset was
// opted in.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	for _, c := range w.Coins {
		if !c.IsNative() && !w.HasOptedIn(c.AssetID) {
			return errors.Wrapf(errors.ErrModel, "holds asset %d without opt in", c.AssetID)
		}
	}
	return nil
}

// HasOptedIn returns true if the wallet accepts the asset. The native unit
// is always accepted.
func (w *Wallet) HasOptedIn(assetID uint64) bool {
	if assetID == coin.NativeAssetID {
		return true
	}
	for _, id := range w.OptedIn {
		if id == assetID {
			return true
		}
	}
	return false
}

// Asset is a secondary fungible asset registered at genesis.
type Asset struct {
	ID       uint64           `json:"id"`
	Name     string           `json:"name"`
	Decimals uint32           `json:"decimals"`
	Creator  heirloom.Address `json:"creator"`
}

// Validate checks the asset definition.
func (a *Asset) Validate() error {
	if a.ID == coin.NativeAssetID {
		return errors.Wrap(errors.ErrModel, "asset id 0 is reserved for the native unit")
	}
	if a.Name == "" {
		return errors.Wrap(errors.ErrModel, "missing name")
	}
	if a.Decimals > 19 {
		return errors.Wrapf(errors.ErrModel, "too many decimals: %d", a.Decimals)
	}
	if len(a.Creator) != 0 {
		if err := a.Creator.Validate(); err != nil {
			return errors.Wrap(err, "creator")
		}
	}
	return nil
}

func walletKey(addr heirloom.Address) []byte {
	return append([]byte(walletPrefix), addr...)
}

func assetKey(id uint64) []byte {
	key := make([]byte, len(assetPrefix)+8)
	copy(key, assetPrefix)
	binary.BigEndian.PutUint64(key[len(assetPrefix):], id)
	return key
}

func loadWallet(db heirloom.ReadOnlyKVStore, addr heirloom.Address) (*Wallet, error) {
	raw, err := db.Get(walletKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	var w Wallet
	if raw == nil {
		return &w, nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, &w); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &w, nil
}

func saveWallet(db heirloom.KVStore, addr heirloom.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	if err := w.Validate(); err != nil {
		return err
	}
	raw, err := cdc.MarshalBinaryBare(w)
	if err != nil {
		return errors.Wrap(err, "marshal wallet")
	}
	return db.Set(walletKey(addr), raw)
}

func loadAsset(db heirloom.ReadOnlyKVStore, id uint64) (*Asset, error) {
	raw, err := db.Get(assetKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "load asset")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "asset %d", id)
	}
	var a Asset
	if err := cdc.UnmarshalBinaryBare(raw, &a); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &a, nil
}

func saveAsset(db heirloom.KVStore, a *Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	raw, err := cdc.MarshalBinaryBare(a)
	if err != nil {
		return errors.Wrap(err, "marshal asset")
	}
	return db.Set(assetKey(a.ID), raw)
}
