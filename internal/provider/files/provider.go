// Package files compiles the paths section of the removal manifest,
// plus the operator's extra directories. The ACME certificate store and
// every extra directory are confirmed individually: both lose data that
// cannot be reinstalled.
package files

import (
	"fmt"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// Provider compiles filesystem removal steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new files Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "files"
}

// Compile transforms the paths section into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	paths := ctx.Manifest().Paths
	extras := ctx.ExtraDirs()
	steps := make([]step.Step, 0, len(paths.Remove)+len(paths.Globs)+len(extras)+1)

	// The certificate store is prompted before the bulk deletions start.
	if paths.Acme != "" {
		if err := validation.ValidateAbsolutePath(paths.Acme); err != nil {
			return nil, fmt.Errorf("paths.acme: %w", err)
		}
		prompt := fmt.Sprintf("Remove the certificate store at %s? Issued certificates will be lost.", paths.Acme)
		steps = append(steps, NewConfirmedRemoveStep(paths.Acme, prompt, p.fs))
	}

	for _, path := range paths.Remove {
		if err := validation.ValidateAbsolutePath(path); err != nil {
			return nil, fmt.Errorf("paths.remove: %w", err)
		}
		steps = append(steps, NewRemovePathStep(path, p.fs))
	}

	for _, pattern := range paths.Globs {
		if err := validation.ValidateAbsolutePath(pattern); err != nil {
			return nil, fmt.Errorf("paths.globs: %w", err)
		}
		steps = append(steps, NewGlobRemoveStep(pattern, p.fs))
	}

	for _, dir := range extras {
		if err := validation.ValidateAbsolutePath(dir); err != nil {
			return nil, fmt.Errorf("extra directory: %w", err)
		}
		prompt := fmt.Sprintf("Remove %s and everything below it?", dir)
		steps = append(steps, NewConfirmedRemoveStep(dir, prompt, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
