// Package cmdoutput extracts values from the human-readable output of network
// command-line tools. Extraction is line based: a line is split at its first
// colon, the left side is matched against a fixed label and the right side is
// the value. Lines that do not match are ignored.
package cmdoutput

import (
	"net/netip"
	"strings"

	"golang-netenforce/internal/types"
)

// Default labels printed by English-language Windows netsh and by iw.
const (
	LabelName        = "Name"
	LabelSSID        = "SSID"
	LabelDHCPEnabled = "DHCP enabled"
	LabelIPAddress   = "IP Address"
)

// Parser turns raw command output into an observed addressing state.
type Parser interface {
	Parse(raw string) types.ObservedConfig
}

// LabelParser looks for fixed labels in colon-delimited output.
// Missing labels leave the corresponding field at its zero value.
type LabelParser struct {
	DHCPLabel    string
	AddressLabel string
}

var _ Parser = LabelParser{}

// NewLabelParser returns a parser using the netsh labels.
func NewLabelParser() LabelParser {
	return LabelParser{
		DHCPLabel:    LabelDHCPEnabled,
		AddressLabel: LabelIPAddress,
	}
}

// Parse extracts DHCP state and the first IPv4 address. It never fails.
func (p LabelParser) Parse(raw string) types.ObservedConfig {
	var observed types.ObservedConfig
	dhcpSeen := false

	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := splitLabel(line)
		if !ok {
			continue
		}

		switch {
		case !dhcpSeen && strings.EqualFold(key, p.DHCPLabel):
			dhcpSeen = true
			observed.DHCPEnabled = strings.EqualFold(firstField(value), "yes")
		case !observed.CurrentAddress.IsValid() && strings.EqualFold(key, p.AddressLabel):
			if addr, err := netip.ParseAddr(firstField(value)); err == nil && addr.Is4() {
				observed.CurrentAddress = addr
			}
		}
	}

	return observed
}

// Identity returns the value of the first SSID line. BSSID lines never match
// because the whole label is compared.
func Identity(raw string) (types.NetworkIdentity, bool) {
	value, ok := Value(raw, LabelSSID)
	return types.NetworkIdentity(value), ok
}

// InterfaceIdentity returns the SSID from the block of the interface named
// iface. A block starts at a Name line; names compare case-insensitively.
// Lines before the first Name line belong to every interface, so output
// that lists a single interface without names still matches.
func InterfaceIdentity(raw, iface string) (types.NetworkIdentity, bool) {
	inBlock := true
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := splitLabel(line)
		if !ok {
			continue
		}
		switch {
		case strings.EqualFold(key, LabelName):
			inBlock = strings.EqualFold(value, iface)
		case inBlock && strings.EqualFold(key, LabelSSID) && value != "":
			return types.NetworkIdentity(value), true
		}
	}
	return "", false
}

// Value returns the trimmed value of the first line whose label equals label.
// An empty value counts as absent.
func Value(raw, label string) (string, bool) {
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := splitLabel(line)
		if !ok || !strings.EqualFold(key, label) {
			continue
		}
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

func splitLabel(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func firstField(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
