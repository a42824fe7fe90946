// Package rpm compiles the packages section of the removal manifest.
//
// Emission order: the panel's own packages first (manifest order), then
// the guarded package, then the name globs, then the bundled stack
// packages. The guarded package is excluded from the globs so a glob
// never force-removes what the guarded step refused to.
package rpm

import (
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// DefaultPackageManager is used when the caller does not pick one.
const DefaultPackageManager = "dnf"

// Provider compiles package removal steps.
type Provider struct {
	runner ports.CommandRunner
	pm     string
}

// NewProvider creates a new rpm Provider. pm is "dnf" or "yum"; empty
// selects the default.
func NewProvider(runner ports.CommandRunner, pm string) *Provider {
	if pm == "" {
		pm = DefaultPackageManager
	}
	return &Provider{runner: runner, pm: pm}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "rpm"
}

// Compile transforms the packages section into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	man := ctx.Manifest()
	packages := man.Packages
	prefix := man.Panel.Name

	for _, name := range packages.Remove {
		if err := validation.ValidatePackageName(name); err != nil {
			return nil, fmt.Errorf("packages.remove: %w", err)
		}
	}
	for _, glob := range packages.Globs {
		if err := validation.ValidatePackageName(glob); err != nil {
			return nil, fmt.Errorf("packages.globs: %w", err)
		}
	}

	var panelPkgs, stackPkgs []string
	for _, name := range packages.Remove {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			panelPkgs = append(panelPkgs, name)
		} else {
			stackPkgs = append(stackPkgs, name)
		}
	}

	var exclude []string
	steps := make([]step.Step, 0, len(packages.Remove)+len(packages.Globs)+1)

	for _, name := range panelPkgs {
		steps = append(steps, NewPackageStep(name, p.pm, p.runner))
	}

	if guarded := packages.Guarded; guarded.Name != "" {
		if err := validation.ValidatePackageName(guarded.Name); err != nil {
			return nil, fmt.Errorf("packages.guarded: %w", err)
		}
		steps = append(steps, NewGuardedPackageStep(guarded.Name, p.pm, guarded.Remediation, p.runner))
		exclude = append(exclude, guarded.Name)
	}

	// Globs run after the named panel packages, so exclude those too:
	// a failed named removal must not be retried through the glob.
	exclude = append(exclude, panelPkgs...)
	for _, glob := range packages.Globs {
		steps = append(steps, NewGlobStep(glob, p.pm, exclude, p.runner))
	}

	for _, name := range stackPkgs {
		steps = append(steps, NewPackageStep(name, p.pm, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
