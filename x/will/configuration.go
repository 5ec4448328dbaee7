package will

import (
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/gconf"
)

const confKey = "will"

// Configuration holds the chain wide limits of the will.
type Configuration struct {
	// MinInactivitySeconds is the shortest inactivity period accepted at
	// creation.
	MinInactivitySeconds uint64 `json:"min_inactivity_seconds"`
	// MinDeposit is the smallest native amount a single deposit may carry.
	MinDeposit uint64 `json:"min_deposit"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the genesis carries no will
// configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		MinInactivitySeconds: 60,
		MinDeposit:           1_000_000,
	}
}

func (c *Configuration) Validate() error {
	if c.MinInactivitySeconds == 0 {
		return errors.Wrap(errors.ErrState, "min inactivity seconds must be positive")
	}
	if c.MinInactivitySeconds > maxInactivityPeriod {
		return errors.Wrapf(errors.ErrState, "min inactivity seconds above %d", uint64(maxInactivityPeriod))
	}
	if c.MinDeposit == 0 {
		return errors.Wrap(errors.ErrState, "min deposit must be positive")
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confKey, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return DefaultConfiguration(), nil
		}
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
