// Package repo compiles removal of the panel's package repository file.
// The file is parsed and its baseurl checked against the expected repo
// host before deletion, so a foreign file at the same path is left alone.
package repo

import (
	"fmt"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// Provider compiles repository removal steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new repo Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "repo"
}

// Compile transforms the repo settings into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	system := ctx.Manifest().System
	if system.RepoFile == "" {
		return nil, nil
	}
	if err := validation.ValidateAbsolutePath(system.RepoFile); err != nil {
		return nil, fmt.Errorf("system.repo_file: %w", err)
	}

	return []step.Step{NewRepoFileStep(system.RepoFile, system.RepoHost, p.fs)}, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
