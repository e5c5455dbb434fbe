//go:build unit

package file

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerAdapter(t *testing.T) {
	adapter := NewManagerAdapter()
	assert.NotNil(t, adapter)
}

func TestManagerAdapter_WriteAndReadFile(t *testing.T) {
	adapter := NewManagerAdapter()

	tempDir := t.TempDir()
	resolvConf := filepath.Join(tempDir, "resolv.conf")
	content := []byte("# Generated by golang-netenforce\nnameserver 0.0.0.0\n")

	t.Run("WriteFile", func(t *testing.T) {
		err := adapter.WriteFile(resolvConf, content, 0644)
		require.NoError(t, err)

		info, err := os.Stat(resolvConf)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	})

	t.Run("ReadFile", func(t *testing.T) {
		read, err := adapter.ReadFile(resolvConf)
		require.NoError(t, err)
		assert.Equal(t, content, read)
	})

	t.Run("OverwriteLeavesNoTempFiles", func(t *testing.T) {
		require.NoError(t, adapter.WriteFile(resolvConf, []byte("nameserver 8.8.8.8\n"), 0644))

		entries, err := os.ReadDir(tempDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		read, err := adapter.ReadFile(resolvConf)
		require.NoError(t, err)
		assert.Equal(t, "nameserver 8.8.8.8\n", string(read))
	})
}

func TestManagerAdapter_WriteFile_KeepsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	adapter := NewManagerAdapter()

	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "stub-resolv.conf")
	link := filepath.Join(tempDir, "resolv.conf")
	require.NoError(t, os.WriteFile(target, []byte("nameserver 127.0.0.53\n"), 0644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, adapter.WriteFile(link, []byte("nameserver 0.0.0.0\n"), 0644))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must not be replaced by a regular file")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "nameserver 0.0.0.0\n", string(data))
}

func TestManagerAdapter_ReadFile_NonExistent(t *testing.T) {
	adapter := NewManagerAdapter()

	_, err := adapter.ReadFile("/nonexistent/file.txt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestManagerAdapter_WriteFile_InvalidPath(t *testing.T) {
	adapter := NewManagerAdapter()

	err := adapter.WriteFile("/nonexistent/directory/resolv.conf", []byte("test"), 0644)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}
