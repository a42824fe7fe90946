// Package cron compiles removal of the panel's root crontab entries.
package cron

import (
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// Provider compiles crontab cleanup steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new cron Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "cron"
}

// Compile transforms the crontab settings into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	match := ctx.Manifest().System.CrontabMatch
	if match == "" {
		match = ctx.Manifest().Panel.InstallRoot
	}
	if match == "" {
		return nil, nil
	}
	return []step.Step{NewCrontabStep(match, p.runner)}, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
