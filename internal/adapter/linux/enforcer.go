//go:build linux

package linux

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/types"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

// DefaultResolvConf is the resolver file written by the enforcer.
const DefaultResolvConf = "/etc/resolv.conf"

const resolvConfHeader = "# Generated by golang-netenforce\n"

// Enforcer applies static or DHCP-assigned IPv4 configuration through netlink.
type Enforcer struct {
	networkMgr   port.NetworkManager
	dhcpClient   port.DHCPClient
	fileMgr      port.FileManager
	resolvConf   string
	leaseTimeout time.Duration
}

// Ensure Enforcer implements the Enforcer port
var _ port.Enforcer = (*Enforcer)(nil)

// NewEnforcer creates an enforcer. leaseTimeout bounds the DHCP exchange.
func NewEnforcer(networkMgr port.NetworkManager, dhcpClient port.DHCPClient, fileMgr port.FileManager, leaseTimeout time.Duration) *Enforcer {
	return &Enforcer{
		networkMgr:   networkMgr,
		dhcpClient:   dhcpClient,
		fileMgr:      fileMgr,
		resolvConf:   DefaultResolvConf,
		leaseTimeout: leaseTimeout,
	}
}

// WithResolvConf overrides the resolver file path.
func (e *Enforcer) WithResolvConf(path string) *Enforcer {
	e.resolvConf = path
	return e
}

// EnforceStatic replaces the IPv4 addresses of the link with the desired
// permanent address, points the default route at the desired gateway and
// rewrites the resolver file.
func (e *Enforcer) EnforceStatic(ctx context.Context, interfaceName string, desired types.DesiredConfig) error {
	logger := logging.WithComponentAndInterface("static", interfaceName)

	if !desired.Address.Is4() || !desired.SubnetMask.Is4() {
		return fmt.Errorf("%w: static configuration needs an IPv4 address and mask", types.ErrEnforcement)
	}

	link, err := e.prepareLink(logger, interfaceName)
	if err != nil {
		return err
	}

	ipNet := &net.IPNet{
		IP:   net.IP(desired.Address.AsSlice()),
		Mask: net.IPMask(desired.SubnetMask.AsSlice()),
	}
	logger.WithField("ip", ipNet.String()).Info("Configuring interface with static IP")

	// No lifetimes: the kernel marks the address permanent.
	if err := e.replaceAddress(logger, link, &netlink.Addr{IPNet: ipNet}); err != nil {
		return err
	}

	if desired.Gateway.IsValid() && !desired.Gateway.IsUnspecified() {
		if err := e.configureDefaultRoute(logger, link, net.IP(desired.Gateway.AsSlice())); err != nil {
			return err
		}
	}

	var servers []net.IP
	if desired.Resolver.IsValid() {
		servers = append(servers, net.IP(desired.Resolver.AsSlice()))
	}
	return e.configureDNS(logger, servers)
}

// EnforceAutomatic performs one DHCP exchange and applies the lease. The
// preferred lifetime ends at the renewal time, after which the observer no
// longer reports the address as leased and the next tick asks again.
func (e *Enforcer) EnforceAutomatic(ctx context.Context, interfaceName string) error {
	logger := logging.WithComponentAndInterface("dhcp", interfaceName)

	link, err := e.prepareLink(logger, interfaceName)
	if err != nil {
		return err
	}

	ack, err := e.dhcpClient.RequestLease(ctx, interfaceName, e.leaseTimeout)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}
	logger.WithField("ip", ack.YourIPAddr.String()).Info("Obtained DHCP lease")

	return e.applyLease(logger, link, ack)
}

func (e *Enforcer) applyLease(logger *logrus.Entry, link netlink.Link, ack *dhcpv4.DHCPv4) error {
	subnetMask := ack.SubnetMask()
	if subnetMask == nil {
		subnetMask = net.IPv4Mask(255, 255, 255, 0)
	}
	ipNet := &net.IPNet{
		IP:   ack.YourIPAddr.To4(),
		Mask: subnetMask,
	}

	leaseTime := ack.IPAddressLeaseTime(60 * time.Second)
	renewal := ack.IPAddressRenewalTime(leaseTime / 2)
	if renewal <= 0 || renewal > leaseTime {
		renewal = leaseTime / 2
	}
	logger.WithFields(logrus.Fields{
		"lease_time":   leaseTime.String(),
		"renewal_time": renewal.String(),
	}).Debug("Lease times extracted")

	addr := &netlink.Addr{
		IPNet:       ipNet,
		ValidLft:    int(leaseTime.Seconds()),
		PreferedLft: int(renewal.Seconds()),
	}
	if err := e.replaceAddress(logger, link, addr); err != nil {
		return err
	}

	if routers := ack.Router(); len(routers) > 0 {
		if err := e.configureDefaultRoute(logger, link, routers[0]); err != nil {
			return err
		}
	}

	if dnsServers := ack.DNS(); len(dnsServers) > 0 {
		var dnsStrings []string
		for _, dns := range dnsServers {
			dnsStrings = append(dnsStrings, dns.String())
		}
		logger.WithField("dns_servers", strings.Join(dnsStrings, ", ")).Info("DNS servers received")
		return e.configureDNS(logger, dnsServers)
	}

	return nil
}

// prepareLink resolves the link and brings it up if needed.
func (e *Enforcer) prepareLink(logger *logrus.Entry, interfaceName string) (netlink.Link, error) {
	link, err := e.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}

	if link.Attrs().Flags&net.FlagUp == 0 {
		logger.Warn("Interface is down, bringing it up")
		if err := e.networkMgr.SetLinkUp(link); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrEnforcement, err)
		}
	}

	return link, nil
}

// replaceAddress removes every other IPv4 address from the link and installs
// addr, refreshing its lifetimes when it is already present.
func (e *Enforcer) replaceAddress(logger *logrus.Entry, link netlink.Link, addr *netlink.Addr) error {
	existingAddrs, err := e.networkMgr.ListAddresses(link)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}

	for _, existing := range existingAddrs {
		if sameIPNet(existing.IPNet, addr.IPNet) {
			continue
		}
		if err := e.networkMgr.DeleteAddress(link, &existing); err != nil {
			logger.WithError(err).WithField("address", existing.IPNet.String()).Warn("Failed to remove existing address")
		} else {
			logger.WithField("address", existing.IPNet.String()).Debug("Removed existing address")
		}
	}

	if err := e.networkMgr.ReplaceAddress(link, addr); err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}
	logger.WithField("ip", addr.IPNet.String()).Info("Address configured")
	return nil
}

// configureDefaultRoute makes gateway the only default route through the link.
func (e *Enforcer) configureDefaultRoute(logger *logrus.Entry, link netlink.Link, gateway net.IP) error {
	logger = logger.WithField("gateway", gateway.String())

	routes, err := e.networkMgr.ListRoutes(link)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}

	targetRouteExists := false
	for _, route := range routes {
		if !isDefaultRoute(route) {
			continue
		}
		if route.Gw != nil && route.Gw.Equal(gateway) {
			targetRouteExists = true
			continue
		}
		if err := e.networkMgr.DeleteRoute(&route); err != nil {
			logger.WithError(err).Warn("Failed to remove existing default route")
		} else if route.Gw != nil {
			logger.WithField("old_gateway", route.Gw.String()).Debug("Removed existing default route")
		}
	}

	if targetRouteExists {
		logger.Debug("Default route already configured, skipping")
		return nil
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Gw:        gateway,
	}
	if err := e.networkMgr.ReplaceRoute(route); err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}
	logger.Info("Default route configured")
	return nil
}

// configureDNS writes the resolver file. An empty server list leaves a file
// with no nameserver lines, which clears any resolver set earlier.
func (e *Enforcer) configureDNS(logger *logrus.Entry, dnsServers []net.IP) error {
	newContent := resolvConfHeader
	for _, dns := range dnsServers {
		newContent += fmt.Sprintf("nameserver %s\n", dns.String())
	}

	if currentContent, err := e.fileMgr.ReadFile(e.resolvConf); err == nil {
		if string(currentContent) == newContent {
			logger.Debug("DNS configuration already up to date, skipping")
			return nil
		}
	}

	if err := e.fileMgr.WriteFile(e.resolvConf, []byte(newContent), 0644); err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}

	logger.WithField("path", e.resolvConf).Info("Updated resolver configuration")
	return nil
}

func isDefaultRoute(route netlink.Route) bool {
	if route.Dst == nil {
		return true
	}
	ones, _ := route.Dst.Mask.Size()
	return ones == 0 && route.Dst.IP.IsUnspecified()
}

func sameIPNet(a, b *net.IPNet) bool {
	if a == nil || b == nil {
		return false
	}
	return a.IP.Equal(b.IP) && a.Mask.String() == b.Mask.String()
}
