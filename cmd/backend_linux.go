//go:build linux

package cmd

import (
	"golang-netenforce/internal/adapter/infrastructure/dhcp"
	"golang-netenforce/internal/adapter/infrastructure/file"
	"golang-netenforce/internal/adapter/infrastructure/network"
	"golang-netenforce/internal/adapter/linux"
	"golang-netenforce/internal/pkg/config"
	"golang-netenforce/internal/port"
)

func newNetlinkBackend(cfg *config.Config, runner port.CommandRunner) (port.Observer, port.Enforcer, error) {
	networkMgr := network.NewManagerAdapter()
	observer := linux.NewObserver(cfg.Interface, runner, networkMgr)
	enforcer := linux.NewEnforcer(networkMgr, dhcp.NewClientAdapter(), file.NewManagerAdapter(), cfg.CommandTimeout())
	return observer, enforcer, nil
}
