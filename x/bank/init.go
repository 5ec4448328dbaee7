package bank

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

const optKey = "bank"

// Genesis is the "bank" section of the genesis file.
type Genesis struct {
	Assets  []Asset          `json:"assets"`
	Wallets []GenesisAccount `json:"wallets"`
}

// GenesisAccount is used to parse the json from genesis file
// use heirloom.Address, so address in hex, not base64
type GenesisAccount struct {
	Address heirloom.Address `json:"address"`
	Coins   []coin.Coin      `json:"coins"`
	OptedIn []uint64         `json:"opted_in"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ heirloom.Initializer = Initializer{}

// FromGenesis will parse initial asset and account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts heirloom.Options, kv heirloom.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	for i := range gen.Assets {
		a := gen.Assets[i]
		exists, err := kv.Has(assetKey(a.ID))
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrapf(errors.ErrDuplicate, "asset %d", a.ID)
		}
		if err := saveAsset(kv, &a); err != nil {
			return errors.Wrapf(err, "asset %d", a.ID)
		}
	}

	control := NewController()
	for _, acct := range gen.Wallets {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis wallet")
		}
		for _, id := range acct.OptedIn {
			if err := control.OptIn(kv, acct.Address, id); err != nil {
				return errors.Wrapf(err, "wallet %s", acct.Address)
			}
		}
		for _, c := range acct.Coins {
			if err := control.CoinMint(kv, acct.Address, c); err != nil {
				return errors.Wrapf(err, "wallet %s", acct.Address)
			}
		}
	}
	return nil
}
