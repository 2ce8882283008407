package gconf

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by every package configuration. Protobuf
// messages provide Marshal and Unmarshal, Validate must be written by hand.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// Each package owns a single configuration entry.
func configKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	key := configKey(pkg)
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "validate %q", key)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration of pkg into conf. ErrNotFound is returned
// when pkg has no configuration saved.
func Load(db ReadStore, pkg string, conf Configuration) error {
	key := configKey(pkg)
	switch raw, err := db.Get(key); {
	case err != nil:
		return errors.Wrapf(err, "get %q", key)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration %q", key)
	default:
		if err := conf.Unmarshal(raw); err != nil {
			return errors.Wrapf(err, "unmarshal %q", key)
		}
		return nil
	}
}

// InitConfig saves the genesis section conf.<pkg> as the configuration of
// pkg. ErrNotFound is returned when the section is missing.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var sections weave.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "conf section")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %q configuration in genesis", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %q configuration", pkg)
	}
	return Save(db, pkg, conf)
}
