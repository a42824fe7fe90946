package rpm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

func runCtx() step.RunContext {
	return step.NewRunContext(context.Background())
}

func TestPackageStep_Check(t *testing.T) {
	t.Parallel()

	t.Run("installed package needs apply", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("rpm", []string{"-q", "exim"}, ports.CommandResult{ExitCode: 0, Stdout: "exim-4.96-1.el9.x86_64\n"})

		status, err := NewPackageStep("exim", "dnf", runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusNeedsApply, status)
	})

	t.Run("absent package is satisfied", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("rpm", []string{"-q", "exim"}, ports.CommandResult{ExitCode: 1, Stdout: "package exim is not installed\n"})

		status, err := NewPackageStep("exim", "dnf", runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusSatisfied, status)
	})
}

func TestPackageStep_Apply(t *testing.T) {
	t.Parallel()

	t.Run("removes through the package manager", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("dnf", []string{"-y", "remove", "exim"}, ports.CommandResult{ExitCode: 0})

		require.NoError(t, NewPackageStep("exim", "dnf", runner).Apply(runCtx()))
		assert.True(t, runner.Called("dnf", "-y", "remove", "exim"))
	})

	t.Run("yum variant", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("yum", []string{"-y", "remove", "exim"}, ports.CommandResult{ExitCode: 0})

		assert.NoError(t, NewPackageStep("exim", "yum", runner).Apply(runCtx()))
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("dnf", []string{"-y", "remove", "orbit-nginx"}, ports.CommandResult{ExitCode: 1, Stderr: "Error: scriptlet failed"})

		err := NewPackageStep("orbit-nginx", "dnf", runner).Apply(runCtx())
		assert.ErrorContains(t, err, "scriptlet failed")
	})
}

func TestGuardedPackageStep_Remediation(t *testing.T) {
	t.Parallel()

	s := NewGuardedPackageStep("orbit-nginx", "dnf", []string{"line one", "line two"}, ports.NewMockCommandRunner())

	var guarded step.Guarded = s
	assert.Equal(t, "line one\nline two", guarded.Remediation())
	assert.Equal(t, "rpm:remove:orbit-nginx", s.ID().String())
}

func TestGlobStep(t *testing.T) {
	t.Parallel()

	t.Run("no matches is satisfied", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("rpm", []string{"-qa", "--qf", "%{NAME}\n", "orbit-*"}, ports.CommandResult{ExitCode: 0, Stdout: ""})

		status, err := NewGlobStep("orbit-*", "dnf", nil, runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusSatisfied, status)
	})

	t.Run("excluded names do not count", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("rpm", []string{"-qa", "--qf", "%{NAME}\n", "orbit-*"}, ports.CommandResult{ExitCode: 0, Stdout: "orbit-nginx\n"})

		status, err := NewGlobStep("orbit-*", "dnf", []string{"orbit-nginx"}, runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusSatisfied, status)
	})

	t.Run("apply removes matches in one transaction", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("rpm", []string{"-qa", "--qf", "%{NAME}\n", "orbit-*"}, ports.CommandResult{ExitCode: 0, Stdout: "orbit-ftp\norbit-dns\norbit-nginx\n"})
		runner.AddResult("dnf", []string{"-y", "remove", "orbit-ftp", "orbit-dns"}, ports.CommandResult{ExitCode: 0})

		s := NewGlobStep("orbit-*", "dnf", []string{"orbit-nginx"}, runner)
		require.NoError(t, s.Apply(runCtx()))
		assert.True(t, runner.Called("dnf", "-y", "remove", "orbit-ftp", "orbit-dns"))
	})
}

func TestProvider_CompileOrder(t *testing.T) {
	t.Parallel()

	man := &manifest.Manifest{
		Panel: manifest.Panel{Name: "orbit"},
		Packages: manifest.Packages{
			Remove: []string{"orbit-php", "orbit-cli", "exim", "dovecot"},
			Globs:  []string{"orbit-*"},
			Guarded: manifest.GuardedPackage{
				Name:        "orbit-nginx",
				Remediation: []string{"recover manually"},
			},
		},
	}

	p := NewProvider(ports.NewMockCommandRunner(), "")
	steps, err := p.Compile(step.NewCompileContext(man))
	require.NoError(t, err)

	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID().String()
	}
	assert.Equal(t, []string{
		"rpm:remove:orbit-php",
		"rpm:remove:orbit-cli",
		"rpm:remove:orbit-nginx",
		"rpm:remove-glob:orbit-*",
		"rpm:remove:exim",
		"rpm:remove:dovecot",
	}, ids)

	// The guarded step is the one carrying remediation.
	assert.NotNil(t, step.AsGuarded(steps[2]))
}

func TestProvider_CompileRejectsBadName(t *testing.T) {
	t.Parallel()

	man := &manifest.Manifest{
		Packages: manifest.Packages{Remove: []string{"exim; rm -rf /"}},
	}

	_, err := NewProvider(ports.NewMockCommandRunner(), "dnf").Compile(step.NewCompileContext(man))
	assert.ErrorContains(t, err, "packages.remove")
}
