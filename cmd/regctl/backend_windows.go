//go:build windows

package main

import (
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/store/winstore"
)

func openWindows(c *config.Config) (store.Store, func() error, error) {
	access := uint32(registry.READ | registry.WRITE)
	if c.Store.ReadOnly {
		access = registry.READ
	}
	return winstore.New(winstore.WithAccess(access)), func() error { return nil }, nil
}
