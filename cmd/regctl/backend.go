package main

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/internal/logging"
	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/store/boltstore"
	"github.com/joshuapare/regkit/pkg/store/memstore"
)

// openStore opens the configured backend. The returned func releases it.
func openStore(c *config.Config) (store.Store, func() error, error) {
	switch c.Store.Backend {
	case config.BackendMemory:
		log.Debug("using in-memory store; changes are discarded on exit")
		return memstore.New(memstore.WithReadOnly(c.Store.ReadOnly)), func() error { return nil }, nil
	case config.BackendBolt:
		path := config.ExpandHome(c.Store.Path)
		s, err := boltstore.Open(path,
			boltstore.WithLogger(log),
			boltstore.WithReadOnly(c.Store.ReadOnly),
			boltstore.WithNoSync(c.Store.NoSync),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", path, err)
		}
		return s, s.Close, nil
	case config.BackendWindows:
		return openWindows(c)
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", c.Store.Backend)
	}
}

func keyOptions(c *config.Config) []registry.Option {
	opts := []registry.Option{registry.WithLimits(c.RegistryLimits())}
	if c.Limits.MemoryBudget > 0 {
		opts = append(opts, registry.WithMemoryBudget(c.Limits.MemoryBudget))
	}
	return opts
}

// withKey opens the store and the key at path, runs fn, and closes both. With
// create set the key and its ancestors are created as needed.
func withKey(path string, create bool, fn func(k *registry.Key) error) (err error) {
	s, release, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := release(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	open := registry.Open
	if create {
		open = registry.Create
	}
	k, err := open(s, path, keyOptions(cfg)...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := k.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	log.Debug("opened key", "path", k.Path(), "backend", cfg.Store.Backend)
	return fn(k)
}

// report logs err with its registry context and passes it through.
func report(msg string, err error) error {
	logging.Failure(log, msg, err)
	return err
}
