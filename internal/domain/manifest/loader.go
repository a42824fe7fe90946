package manifest

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/orbitpanel/orbitsweep/internal/ports"
)

//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in removal manifest for a stock panel install.
func Default() (*Manifest, error) {
	return parse(defaultManifest, "embedded default")
}

// Load reads a manifest override from disk.
func Load(fs ports.FileSystem, path string) (*Manifest, error) {
	if !fs.Exists(path) {
		return nil, NewUserError(ErrCodeManifestNotFound, "manifest file not found").
			WithContext(path).
			WithSuggestion("pass --manifest with a readable file, or omit it to use the built-in table")
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, NewUserError(ErrCodeManifestNotFound, "manifest file could not be read").
			WithContext(path).
			WithUnderlying(err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, NewUserError(ErrCodeManifestParse, "manifest is not valid YAML").
			WithContext(source).
			WithUnderlying(err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
