package will

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ heirloom.Initializer = Initializer{}

// FromGenesis stores the will configuration. The configuration is optional,
// defaults apply when it is missing.
func (Initializer) FromGenesis(opts heirloom.Options, kv heirloom.KVStore) error {
	if err := gconf.InitConfig(kv, opts, confKey, &Configuration{}); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}
	return nil
}
