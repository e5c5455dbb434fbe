//go:build linux

// Package network provides network management adapter implementation.
package network

import (
	"fmt"

	"golang-netenforce/internal/port"

	"github.com/vishvananda/netlink"
)

// ManagerAdapter is an adapter that implements the NetworkManager port using vishvananda/netlink library.
type ManagerAdapter struct{}

// Ensure ManagerAdapter implements the NetworkManager port
var _ port.NetworkManager = (*ManagerAdapter)(nil)

// NewManagerAdapter creates a new network manager adapter.
func NewManagerAdapter() *ManagerAdapter {
	return &ManagerAdapter{}
}

// GetLinkByName returns a network link by interface name.
func (n *ManagerAdapter) GetLinkByName(interfaceName string) (netlink.Link, error) {
	link, err := netlink.LinkByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("failed to get netlink interface %s: %w", interfaceName, err)
	}
	return link, nil
}

// ListAddresses returns IPv4 addresses configured on the link.
func (n *ManagerAdapter) ListAddresses(link netlink.Link) ([]netlink.Addr, error) {
	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses on %s: %w", link.Attrs().Name, err)
	}
	return addrs, nil
}

// ReplaceAddress adds an IP address, or updates flags and lifetimes of an existing one.
func (n *ManagerAdapter) ReplaceAddress(link netlink.Link, addr *netlink.Addr) error {
	if err := netlink.AddrReplace(link, addr); err != nil {
		return fmt.Errorf("failed to replace address %s on %s: %w", addr.IPNet.String(), link.Attrs().Name, err)
	}
	return nil
}

// DeleteAddress removes an IP address from the interface.
func (n *ManagerAdapter) DeleteAddress(link netlink.Link, addr *netlink.Addr) error {
	if err := netlink.AddrDel(link, addr); err != nil {
		return fmt.Errorf("failed to delete address %s from %s: %w", addr.IPNet.String(), link.Attrs().Name, err)
	}
	return nil
}

// ListRoutes returns IPv4 routes through the link.
func (n *ManagerAdapter) ListRoutes(link netlink.Link) ([]netlink.Route, error) {
	routes, err := netlink.RouteList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes on %s: %w", link.Attrs().Name, err)
	}
	return routes, nil
}

// ReplaceRoute adds a route or replaces the one with the same destination.
func (n *ManagerAdapter) ReplaceRoute(route *netlink.Route) error {
	if err := netlink.RouteReplace(route); err != nil {
		return fmt.Errorf("failed to replace route via %s: %w", route.Gw, err)
	}
	return nil
}

// DeleteRoute removes a route.
func (n *ManagerAdapter) DeleteRoute(route *netlink.Route) error {
	if err := netlink.RouteDel(route); err != nil {
		return fmt.Errorf("failed to delete route via %s: %w", route.Gw, err)
	}
	return nil
}

// SetLinkUp brings the interface up.
func (n *ManagerAdapter) SetLinkUp(link netlink.Link) error {
	if err := netlink.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to set %s up: %w", link.Attrs().Name, err)
	}
	return nil
}
