package bank

import (
	"encoding/binary"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// RegisterQuery will register the wallets as "/wallets" and the asset
// registry as "/assets"
func RegisterQuery(qr heirloom.QueryRouter) {
	qr.Register("/wallets", walletQuery{})
	qr.Register("/assets", assetQuery{})
}

// walletQuery returns the wallet of the address given as data.
type walletQuery struct{}

func (walletQuery) Query(_ heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	addr := heirloom.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	w, err := loadWallet(db, addr)
	if err != nil {
		return nil, err
	}
	raw, err := cdc.MarshalJSON(w)
	if err != nil {
		return nil, errors.Wrap(err, "marshal wallet")
	}
	return []heirloom.Model{heirloom.Pair(walletKey(addr), raw)}, nil
}

// assetQuery returns the asset whose big endian id is given as data.
type assetQuery struct{}

func (assetQuery) Query(_ heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	if len(data) != 8 {
		return nil, errors.Wrap(errors.ErrInput, "asset id must be 8 bytes")
	}
	id := binary.BigEndian.Uint64(data)
	a, err := loadAsset(db, id)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil
		}
		return nil, err
	}
	raw, err := cdc.MarshalJSON(a)
	if err != nil {
		return nil, errors.Wrap(err, "marshal asset")
	}
	return []heirloom.Model{heirloom.Pair(assetKey(id), raw)}, nil
}
