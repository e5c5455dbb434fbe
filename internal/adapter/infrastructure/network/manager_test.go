//go:build unit && linux

package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerAdapter(t *testing.T) {
	adapter := NewManagerAdapter()
	assert.NotNil(t, adapter)
}

func TestManagerAdapter_GetLinkByName(t *testing.T) {
	adapter := NewManagerAdapter()

	t.Run("Loopback", func(t *testing.T) {
		link, err := adapter.GetLinkByName("lo")
		if err != nil {
			t.Skip("Loopback interface not available, skipping test")
		}
		assert.Equal(t, "lo", link.Attrs().Name)
	})

	t.Run("InvalidInterface", func(t *testing.T) {
		_, err := adapter.GetLinkByName("nonexistent")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get netlink interface nonexistent")
	})
}

func TestManagerAdapter_ReadOnlyQueries(t *testing.T) {
	adapter := NewManagerAdapter()

	link, err := adapter.GetLinkByName("lo")
	if err != nil {
		t.Skip("Loopback interface not available, skipping test")
	}

	t.Run("ListAddresses", func(t *testing.T) {
		addrs, err := adapter.ListAddresses(link)
		require.NoError(t, err)
		for _, addr := range addrs {
			assert.NotNil(t, addr.IP.To4(), "only IPv4 addresses are listed")
		}
	})

	t.Run("ListRoutes", func(t *testing.T) {
		routes, err := adapter.ListRoutes(link)
		require.NoError(t, err)
		for _, route := range routes {
			assert.Equal(t, link.Attrs().Index, route.LinkIndex)
		}
	})
}

// Mutating operations need CAP_NET_ADMIN and change host state; they are
// exercised through the mocked port in the linux adapter tests.
