// Package sysconf compiles the system section of the removal manifest:
// the fixed configuration edits the installer made, reverted in place.
// Only the SELinux restore is confirmed; the other edits touch nothing
// but the installer's own tagged lines.
package sysconf

import (
	"fmt"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// Provider compiles configuration revert steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new sysconf Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sysconf"
}

// Compile transforms the system section into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	system := ctx.Manifest().System
	var steps []step.Step

	addPath := func(field, path string) error {
		if path == "" {
			return nil
		}
		if err := validation.ValidateAbsolutePath(path); err != nil {
			return fmt.Errorf("system.%s: %w", field, err)
		}
		return nil
	}

	for field, path := range map[string]string{
		"selinux_config": system.SELinuxConfig,
		"selinux_saved":  system.SELinuxSaved,
		"hosts_file":     system.HostsFile,
		"rc_local":       system.RCLocal,
		"sysctl_config":  system.SysctlConfig,
		"limits_config":  system.LimitsConfig,
		"resolv_config":  system.ResolvConfig,
		"resolv_saved":   system.ResolvSaved,
	} {
		if err := addPath(field, path); err != nil {
			return nil, err
		}
	}

	if system.SELinuxConfig != "" && system.SELinuxSaved != "" {
		steps = append(steps, NewSELinuxStep(system.SELinuxConfig, system.SELinuxSaved, p.fs))
	}

	if system.HostsFile != "" && system.Marker != "" {
		steps = append(steps, NewMarkerLineStep(system.HostsFile, system.Marker, p.fs))
	}

	if system.RCLocal != "" && system.Marker != "" {
		steps = append(steps, NewManagedBlockStep(system.RCLocal, system.Marker, p.fs))
	}

	if system.SysctlConfig != "" && len(system.SysctlKeys) > 0 {
		steps = append(steps, NewSysctlStep(system.SysctlConfig, system.SysctlKeys, system.Marker, p.fs))
	}

	if system.LimitsConfig != "" && system.Marker != "" {
		steps = append(steps, NewMarkerLineStep(system.LimitsConfig, system.Marker, p.fs))
	}

	if system.ResolvConfig != "" && system.ResolvSaved != "" {
		steps = append(steps, NewRestoreFileStep(system.ResolvConfig, system.ResolvSaved, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
