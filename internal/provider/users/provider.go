// Package users compiles removal of the panel's system accounts. The
// account list comes from the panel's own metadata when the install was
// discovered, falling back to the manifest.
package users

import (
	"fmt"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/validation"
)

// Provider compiles user removal steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new users Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "users"
}

// Compile transforms the user list into steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	users := ctx.Users()
	steps := make([]step.Step, 0, len(users))

	for _, user := range users {
		if err := validation.ValidateUsername(user.Name); err != nil {
			return nil, fmt.Errorf("users: %w", err)
		}
		if user.WebData != "" {
			if err := validation.ValidateAbsolutePath(user.WebData); err != nil {
				return nil, fmt.Errorf("users.web_data: %w", err)
			}
		}
		steps = append(steps, NewUserStep(user, p.runner, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
