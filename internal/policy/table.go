// Package policy holds the desired addressing configuration per network.
package policy

import (
	"fmt"
	"net"
	"sort"

	"golang-netenforce/internal/types"
)

// Table maps network identities to their desired configuration.
// It is built once at startup and has no mutators; lookups are exact,
// case-sensitive matches on the identity as reported by the OS.
type Table struct {
	entries map[types.NetworkIdentity]types.DesiredConfig
}

// New validates entries and returns a table holding its own copy of them.
func New(entries map[types.NetworkIdentity]types.DesiredConfig) (*Table, error) {
	copied := make(map[types.NetworkIdentity]types.DesiredConfig, len(entries))
	for identity, desired := range entries {
		if identity.IsAbsent() {
			return nil, fmt.Errorf("policy entry with empty network identity")
		}
		if err := validate(desired); err != nil {
			return nil, fmt.Errorf("network %q: %w", identity, err)
		}
		copied[identity] = desired
	}
	return &Table{entries: copied}, nil
}

func validate(desired types.DesiredConfig) error {
	switch desired.Mode {
	case types.ModeAutomatic:
		return nil
	case types.ModeStatic:
		if !desired.Address.Is4() {
			return fmt.Errorf("static mode requires an IPv4 address")
		}
		if !desired.SubnetMask.Is4() {
			return fmt.Errorf("static mode requires an IPv4 subnet mask")
		}
		if _, bits := net.IPMask(desired.SubnetMask.AsSlice()).Size(); bits == 0 {
			return fmt.Errorf("subnet mask %s is not contiguous", desired.SubnetMask)
		}
		return nil
	default:
		return fmt.Errorf("unknown addressing mode %q", desired.Mode)
	}
}

// Lookup returns the desired configuration for identity.
func (t *Table) Lookup(identity types.NetworkIdentity) (types.DesiredConfig, bool) {
	desired, ok := t.entries[identity]
	return desired, ok
}

// Len returns the number of known networks.
func (t *Table) Len() int {
	return len(t.entries)
}

// Identities returns the known network identities in sorted order.
func (t *Table) Identities() []types.NetworkIdentity {
	identities := make([]types.NetworkIdentity, 0, len(t.entries))
	for identity := range t.entries {
		identities = append(identities, identity)
	}
	sort.Slice(identities, func(i, j int) bool { return identities[i] < identities[j] })
	return identities
}
