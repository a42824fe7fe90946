// Package discover inspects the live system for panel install metadata
// before any step is compiled.
package discover

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"

	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// Facts is what inspection learned about the installation. A host with no
// panel on it still gets valid Facts: every step will simply plan as
// already satisfied.
type Facts struct {
	Installed   bool
	InstallRoot string
	Version     string
	// PanelUsers are the accounts recorded in the panel's own metadata.
	// Empty when the metadata file is gone; the manifest list then stands.
	PanelUsers []string
}

// metadata mirrors the panel's own conf/orbit.toml.
type metadata struct {
	Version string   `toml:"version"`
	Users   []string `toml:"users"`
}

// Inspect reads the panel's install metadata. Absence of the install root
// or the metadata file is not an error; a metadata file this tool cannot
// parse, or a panel generation newer than the manifest allows, is.
func Inspect(fs ports.FileSystem, man *manifest.Manifest) (Facts, error) {
	facts := Facts{InstallRoot: man.Panel.InstallRoot}

	if !fs.Exists(man.Panel.InstallRoot) {
		return facts, nil
	}
	facts.Installed = true

	metaPath := filepath.Join(man.Panel.InstallRoot, man.Panel.MetadataFile)
	if !fs.Exists(metaPath) {
		return facts, nil
	}

	data, err := fs.ReadFile(metaPath)
	if err != nil {
		return facts, manifest.NewUserError(manifest.ErrCodeManifestInvalid, "panel metadata could not be read").
			WithContext(metaPath).
			WithUnderlying(err)
	}

	var meta metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return facts, manifest.NewUserError(manifest.ErrCodeManifestInvalid, "panel metadata is not valid TOML").
			WithContext(metaPath).
			WithUnderlying(err)
	}

	facts.Version = meta.Version
	facts.PanelUsers = meta.Users

	if tooNew(meta.Version, man.Panel.MaxGeneration) {
		return facts, manifest.NewUserError(manifest.ErrCodePanelUnsupported,
			"installed panel generation is newer than this tool supports").
			WithContext(metaPath).
			WithSuggestion("panel " + meta.Version + " ships its own removal tooling; use that instead")
	}

	return facts, nil
}

// tooNew reports whether the installed version's major generation exceeds
// the supported maximum. Unparseable versions are let through; the steps
// themselves are existence-checked anyway.
func tooNew(version, maxGeneration string) bool {
	if version == "" || maxGeneration == "" {
		return false
	}
	v := "v" + strings.TrimPrefix(version, "v")
	max := "v" + strings.TrimPrefix(maxGeneration, "v")
	if !semver.IsValid(semver.Major(v)) {
		return false
	}
	return semver.Compare(semver.Major(v), semver.Major(max)) > 0
}
