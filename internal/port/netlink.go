//go:build linux

package port

//go:generate mockgen -source=netlink.go -destination=../mock/mock_netlink.go -package=mock -build_constraint=linux

import (
	"context"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/vishvananda/netlink"
)

// DHCPClient is a port for DHCP client operations.
// This interface abstracts DHCP lease acquisition.
type DHCPClient interface {
	// RequestLease performs DHCP DISCOVER/OFFER/REQUEST/ACK sequence
	RequestLease(ctx context.Context, interfaceName string, timeout time.Duration) (*dhcpv4.DHCPv4, error)
}

// NetworkManager is a port for network interface operations.
// This interface abstracts netlink operations for network configuration.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListAddresses returns IPv4 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)

	// ReplaceAddress adds an IP address or updates its lifetimes if present
	ReplaceAddress(link netlink.Link, addr *netlink.Addr) error

	// DeleteAddress removes an IP address from the interface
	DeleteAddress(link netlink.Link, addr *netlink.Addr) error

	// ListRoutes returns IPv4 routes through the link
	ListRoutes(link netlink.Link) ([]netlink.Route, error)

	// ReplaceRoute adds a route or replaces the one with the same destination
	ReplaceRoute(route *netlink.Route) error

	// DeleteRoute removes a route
	DeleteRoute(route *netlink.Route) error

	// SetLinkUp brings the interface up
	SetLinkUp(link netlink.Link) error
}
