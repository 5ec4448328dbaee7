package app

import (
	"crypto/rand"
	"encoding/json"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/x/bank"
	"github.com/iov-one/heirloom/x/sigs"
	"github.com/iov-one/heirloom/x/will"
	"golang.org/x/crypto/ed25519"
)

// DefaultGenesisFunds is the native balance given to the generated owner.
const DefaultGenesisFunds uint64 = 1000 * 1000000

// GenerateOwnerKey creates a new signing key and returns it along with the
// address it signs for.
func GenerateOwnerKey() (ed25519.PrivateKey, heirloom.Address, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return priv, sigs.Condition(pub).Address(), nil
}

// GenInitOptions produces the app_state for a development chain: one funded
// wallet and the default will configuration.
func GenInitOptions(owner heirloom.Address, funds uint64) (json.RawMessage, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	conf := will.DefaultConfiguration()
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"will": conf,
		},
		"bank": bank.Genesis{
			Assets: []bank.Asset{},
			Wallets: []bank.GenesisAccount{
				{Address: owner, Coins: []coin.Coin{coin.Native(funds)}},
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
