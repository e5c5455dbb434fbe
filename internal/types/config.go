// Package types defines common types used across the application.
package types

import (
	"fmt"
	"net/netip"
)

// NetworkIdentity identifies the wireless network the interface is associated with (the SSID).
// The empty value means no network is associated.
type NetworkIdentity string

// IsAbsent reports whether no network is associated.
func (n NetworkIdentity) IsAbsent() bool {
	return n == ""
}

// AddressingMode is the way an interface obtains its IPv4 address.
type AddressingMode string

const (
	ModeAutomatic AddressingMode = "automatic"
	ModeStatic    AddressingMode = "static"
)

// ParseAddressingMode accepts "automatic", "dhcp" and "static". An empty mode is automatic.
func ParseAddressingMode(s string) (AddressingMode, error) {
	switch s {
	case "", "automatic", "dhcp":
		return ModeAutomatic, nil
	case "static":
		return ModeStatic, nil
	default:
		return "", fmt.Errorf("unknown addressing mode %q", s)
	}
}

// DesiredConfig is the addressing configuration a known network requires.
// Address fields are only meaningful when Mode is ModeStatic; an invalid
// (zero) netip.Addr means the field is not set.
type DesiredConfig struct {
	Mode       AddressingMode
	Address    netip.Addr
	SubnetMask netip.Addr
	Gateway    netip.Addr
	Resolver   netip.Addr
}

// ObservedConfig is the addressing state read from the interface during one tick.
// The zero value is what an observation that yielded no information degrades to.
type ObservedConfig struct {
	DHCPEnabled    bool
	CurrentAddress netip.Addr
}

func (o ObservedConfig) String() string {
	addr := "none"
	if o.CurrentAddress.IsValid() {
		addr = o.CurrentAddress.String()
	}
	return fmt.Sprintf("dhcp=%t address=%s", o.DHCPEnabled, addr)
}
