package step

import (
	"github.com/orbitpanel/orbitsweep/internal/domain/discover"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
)

// Provider compiles one section of the removal manifest into steps.
// Each provider owns one target type (services, packages, paths, ...).
type Provider interface {
	// Name returns the provider's identifier (e.g., "systemd", "rpm").
	Name() string

	// Compile transforms its manifest section into an ordered step slice.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext carries the manifest and discovered install facts to
// providers during compilation.
type CompileContext struct {
	man       *manifest.Manifest
	facts     discover.Facts
	extraDirs []string
}

// NewCompileContext creates a CompileContext for the given manifest.
func NewCompileContext(man *manifest.Manifest) CompileContext {
	return CompileContext{man: man}
}

// Manifest returns the removal manifest.
func (c CompileContext) Manifest() *manifest.Manifest {
	return c.man
}

// Facts returns the discovered install facts.
func (c CompileContext) Facts() discover.Facts {
	return c.facts
}

// WithFacts returns a new CompileContext with install facts set.
func (c CompileContext) WithFacts(facts discover.Facts) CompileContext {
	c.facts = facts
	return c
}

// ExtraDirs returns operator-entered directories to delete in addition to
// the manifest paths.
func (c CompileContext) ExtraDirs() []string {
	return c.extraDirs
}

// WithExtraDirs returns a new CompileContext with extra directories set.
func (c CompileContext) WithExtraDirs(dirs []string) CompileContext {
	c.extraDirs = dirs
	return c
}

// Users returns the accounts to remove: the panel's own metadata wins
// over the manifest list when present.
func (c CompileContext) Users() []manifest.User {
	if len(c.facts.PanelUsers) == 0 {
		return c.man.Users
	}
	// Keep manifest web_data paths for names both sides know.
	byName := make(map[string]manifest.User, len(c.man.Users))
	for _, u := range c.man.Users {
		byName[u.Name] = u
	}
	users := make([]manifest.User, 0, len(c.facts.PanelUsers))
	for _, name := range c.facts.PanelUsers {
		if u, ok := byName[name]; ok {
			users = append(users, u)
			continue
		}
		users = append(users, manifest.User{Name: name})
	}
	return users
}
