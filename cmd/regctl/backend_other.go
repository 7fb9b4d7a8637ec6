//go:build !windows

package main

import (
	"errors"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/pkg/store"
)

var errNoWindows = errors.New("the windows backend is only available on Windows")

func openWindows(*config.Config) (store.Store, func() error, error) {
	return nil, nil, errNoWindows
}
