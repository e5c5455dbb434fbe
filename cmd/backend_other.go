//go:build !linux

package cmd

import (
	"fmt"
	"runtime"

	"golang-netenforce/internal/pkg/config"
	"golang-netenforce/internal/port"
)

func newNetlinkBackend(_ *config.Config, _ port.CommandRunner) (port.Observer, port.Enforcer, error) {
	return nil, nil, fmt.Errorf("backend %q is not supported on %s", config.BackendNetlink, runtime.GOOS)
}
