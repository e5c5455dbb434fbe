//go:build linux

// Package linux implements the Observer and Enforcer ports on Linux hosts.
// The wireless association is read from iw, addressing state is read and
// changed through netlink, and automatic addressing is a single DHCPv4
// exchange whose lease is applied with a finite lifetime.
package linux

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"golang-netenforce/internal/pkg/cmdoutput"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/types"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

const notConnected = "Not connected."

// Observer reads the SSID and IPv4 addressing of one wireless interface.
type Observer struct {
	iface      string
	runner     port.CommandRunner
	networkMgr port.NetworkManager
}

// Ensure Observer implements the Observer port
var _ port.Observer = (*Observer)(nil)

// NewObserver creates an observer for iface.
func NewObserver(iface string, runner port.CommandRunner, networkMgr port.NetworkManager) *Observer {
	return &Observer{
		iface:      iface,
		runner:     runner,
		networkMgr: networkMgr,
	}
}

// NetworkIdentity returns the SSID reported by `iw dev <iface> link`.
func (o *Observer) NetworkIdentity(ctx context.Context) (types.NetworkIdentity, error) {
	out, err := o.runner.Run(ctx, "iw", "dev", o.iface, "link")
	if err != nil {
		return "", fmt.Errorf("%w: failed to query wireless link on %s: %w", types.ErrObservation, o.iface, err)
	}

	raw := string(out)
	if strings.HasPrefix(strings.TrimSpace(raw), notConnected) {
		return "", nil
	}

	identity, _ := cmdoutput.Identity(raw)
	return identity, nil
}

// AddressingState reports the first IPv4 address on the link. The address
// counts as automatically assigned while it carries a lease: it is not
// permanent and its preferred lifetime has not run out.
func (o *Observer) AddressingState(ctx context.Context, interfaceName string) (types.ObservedConfig, error) {
	link, err := o.networkMgr.GetLinkByName(interfaceName)
	if err != nil {
		return types.ObservedConfig{}, fmt.Errorf("%w: %w", types.ErrObservation, err)
	}

	addrs, err := o.networkMgr.ListAddresses(link)
	if err != nil {
		return types.ObservedConfig{}, fmt.Errorf("%w: %w", types.ErrObservation, err)
	}

	for _, addr := range addrs {
		if addr.IPNet == nil {
			continue
		}
		ip, ok := netip.AddrFromSlice(addr.IP.To4())
		if !ok {
			continue
		}
		return types.ObservedConfig{
			DHCPEnabled:    isLeased(addr),
			CurrentAddress: ip,
		}, nil
	}

	return types.ObservedConfig{}, nil
}

func isLeased(addr netlink.Addr) bool {
	return addr.Flags&unix.IFA_F_PERMANENT == 0 && addr.PreferedLft > 0
}
