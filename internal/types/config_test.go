//go:build unit

package types

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressingMode(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  AddressingMode
	}{
		{"", ModeAutomatic},
		{"automatic", ModeAutomatic},
		{"dhcp", ModeAutomatic},
		{"static", ModeStatic},
	} {
		mode, err := ParseAddressingMode(tc.input)
		assert.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, mode, tc.input)
	}

	_, err := ParseAddressingMode("manual")
	assert.Error(t, err)
}

func TestObservedConfig_String(t *testing.T) {
	assert.Equal(t, "dhcp=false address=none", ObservedConfig{}.String())
	assert.Equal(t, "dhcp=true address=10.0.0.5", ObservedConfig{
		DHCPEnabled:    true,
		CurrentAddress: netip.MustParseAddr("10.0.0.5"),
	}.String())
}
