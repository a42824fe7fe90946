package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_ExistsAndRemove(t *testing.T) {
	t.Parallel()

	fs := NewMockFileSystem()
	fs.AddFile("/usr/local/orbit/conf/orbit.toml", []byte("version = \"3.2.1\"\n"))

	assert.True(t, fs.Exists("/usr/local/orbit/conf/orbit.toml"))
	assert.True(t, fs.Exists("/usr/local/orbit"))
	assert.True(t, fs.IsDir("/usr/local/orbit"))
	assert.False(t, fs.Exists("/usr/local/elsewhere"))

	require.NoError(t, fs.RemoveAll("/usr/local/orbit"))
	assert.False(t, fs.Exists("/usr/local/orbit/conf/orbit.toml"))
	assert.Contains(t, fs.Removed(), "/usr/local/orbit")
}

func TestMockFileSystem_Glob(t *testing.T) {
	t.Parallel()

	fs := NewMockFileSystem()
	fs.AddFile("/etc/cron.d/orbit-backup", nil)
	fs.AddFile("/etc/cron.d/orbit-stats", nil)
	fs.AddFile("/etc/cron.d/sysstat", nil)

	matches, err := fs.Glob("/etc/cron.d/orbit-*")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMockFileSystem_CopyAndRename(t *testing.T) {
	t.Parallel()

	fs := NewMockFileSystem()
	fs.AddFile("/etc/resolv.conf.orbit-saved", []byte("nameserver 192.0.2.53\n"))

	require.NoError(t, fs.CopyFile("/etc/resolv.conf.orbit-saved", "/etc/resolv.conf"))
	data, err := fs.ReadFile("/etc/resolv.conf")
	require.NoError(t, err)
	assert.Contains(t, string(data), "192.0.2.53")

	require.NoError(t, fs.Rename("/etc/resolv.conf.orbit-saved", "/etc/resolv.conf.bak"))
	assert.False(t, fs.Exists("/etc/resolv.conf.orbit-saved"))
}
