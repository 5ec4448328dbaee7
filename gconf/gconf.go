package gconf

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// ReadStore is the part of heirloom.ReadOnlyKVStore used by Load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of heirloom.KVStore used by Save.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a configuration that can be validated and serialized.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler loads a configuration from its serialized form.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is what an extension keeps in its configuration record.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// Key is where the configuration of pkg is stored.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save stores src as the configuration of pkg. An invalid src is not
// written.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := Key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound when
// nothing was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := Key(pkg)
	switch raw, err := db.Get(key); {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "get %q: %s", key, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	default:
		return errors.Wrapf(dst.Unmarshal(raw), "unmarshal: key %q", key)
	}
}

// InitConfig saves the genesis section conf.<pkg> as the configuration of
// pkg. It returns ErrNotFound when the section is missing, so callers may
// fall back to defaults.
func InitConfig(db Store, opts heirloom.Options, pkg string, conf Configuration) error {
	var sections heirloom.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	return errors.Wrapf(Save(db, pkg, conf), "save configuration for %s", pkg)
}
