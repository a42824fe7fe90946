package discover_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/domain/discover"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

func testManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Default()
	require.NoError(t, err)
	return m
}

func TestInspect_NotInstalled(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()

	facts, err := discover.Inspect(fs, testManifest(t))
	require.NoError(t, err)
	assert.False(t, facts.Installed)
	assert.Equal(t, "/usr/local/orbit", facts.InstallRoot)
}

func TestInspect_MetadataMissing(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddDir("/usr/local/orbit")

	facts, err := discover.Inspect(fs, testManifest(t))
	require.NoError(t, err)
	assert.True(t, facts.Installed)
	assert.Empty(t, facts.Version)
	assert.Empty(t, facts.PanelUsers)
}

func TestInspect_ReadsMetadata(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/usr/local/orbit/conf/orbit.toml", []byte(`
version = "2.8.4"
users = ["admin", "orbit"]
`))

	facts, err := discover.Inspect(fs, testManifest(t))
	require.NoError(t, err)
	assert.True(t, facts.Installed)
	assert.Equal(t, "2.8.4", facts.Version)
	assert.Equal(t, []string{"admin", "orbit"}, facts.PanelUsers)
}

func TestInspect_RejectsNewerGeneration(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/usr/local/orbit/conf/orbit.toml", []byte(`version = "4.0.1"`))

	_, err := discover.Inspect(fs, testManifest(t))
	require.Error(t, err)

	var userErr *manifest.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, manifest.ErrCodePanelUnsupported, userErr.Code)
}

func TestInspect_BadTOML(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/usr/local/orbit/conf/orbit.toml", []byte("version = [broken"))

	_, err := discover.Inspect(fs, testManifest(t))
	require.Error(t, err)
}
