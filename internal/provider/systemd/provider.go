// Package systemd compiles the services section of the removal manifest:
// stop and disable the panel's daemons, unmask the stock units the
// installer masked, delete installed unit files.
package systemd

import (
	"fmt"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// Provider compiles service removal steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new systemd Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "systemd"
}

// Compile transforms the services section into steps, in manifest order.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	services := ctx.Manifest().Services
	steps := make([]step.Step, 0, len(services.Stop)+len(services.Unmask)+len(services.UnitFiles))

	for _, unit := range services.Stop {
		if err := validation.ValidateUnitName(unit); err != nil {
			return nil, fmt.Errorf("services.stop: %w", err)
		}
		steps = append(steps, NewStopStep(unit, p.runner))
	}

	for _, unit := range services.Unmask {
		if err := validation.ValidateUnitName(unit); err != nil {
			return nil, fmt.Errorf("services.unmask: %w", err)
		}
		steps = append(steps, NewUnmaskStep(unit, p.runner))
	}

	for _, path := range services.UnitFiles {
		if err := validation.ValidateAbsolutePath(path); err != nil {
			return nil, fmt.Errorf("services.unit_files: %w", err)
		}
		steps = append(steps, NewUnitFileStep(path, p.fs, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
