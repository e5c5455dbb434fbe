//go:build unit && !windows

package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunnerAdapter(t *testing.T) {
	adapter := NewRunnerAdapter(time.Second)
	assert.NotNil(t, adapter)
}

func TestRunnerAdapter_Run(t *testing.T) {
	adapter := NewRunnerAdapter(5 * time.Second)
	ctx := context.Background()

	t.Run("CapturesStdout", func(t *testing.T) {
		out, err := adapter.Run(ctx, "sh", "-c", "printf 'SSID: Lab\\n'")
		require.NoError(t, err)
		assert.Equal(t, "SSID: Lab\n", string(out))
	})

	t.Run("NonZeroExitIncludesStderr", func(t *testing.T) {
		_, err := adapter.Run(ctx, "sh", "-c", "echo 'element not found' >&2; exit 1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed")
		assert.Contains(t, err.Error(), "element not found")
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, err := adapter.Run(ctx, "definitely-not-a-real-binary-netenforce")
		assert.Error(t, err)
	})

	t.Run("Timeout", func(t *testing.T) {
		short := NewRunnerAdapter(50 * time.Millisecond)
		_, err := short.Run(ctx, "sleep", "5")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
