package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

const installRoot = "/usr/local/orbit"

func runCtx() step.RunContext {
	return step.NewRunContext(context.Background())
}

func listResult(stdout string) ports.CommandResult {
	return ports.CommandResult{ExitCode: 0, Stdout: stdout}
}

func TestCrontabStep_Check(t *testing.T) {
	t.Parallel()

	t.Run("no crontab is satisfied", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"}, ports.CommandResult{ExitCode: 1, Stderr: "no crontab for root"})

		status, err := NewCrontabStep(installRoot, runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusSatisfied, status)
	})

	t.Run("permission failure is unknown, not satisfied", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"},
			ports.CommandResult{ExitCode: 1, Stderr: "must be privileged to use -u"})

		status, err := NewCrontabStep(installRoot, runner).Check(runCtx())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be privileged")
		assert.Equal(t, step.StatusUnknown, status)
	})

	t.Run("panel entries need apply", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"},
			listResult("0 3 * * * /usr/local/orbit/bin/backup\n0 4 * * * /usr/bin/updatedb\n"))

		status, err := NewCrontabStep(installRoot, runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusNeedsApply, status)
	})

	t.Run("foreign entries only is satisfied", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"}, listResult("0 4 * * * /usr/bin/updatedb\n"))

		status, err := NewCrontabStep(installRoot, runner).Check(runCtx())
		require.NoError(t, err)
		assert.Equal(t, step.StatusSatisfied, status)
	})
}

func TestCrontabStep_Apply(t *testing.T) {
	t.Parallel()

	t.Run("rewrites keeping foreign entries", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"},
			listResult("0 3 * * * /usr/local/orbit/bin/backup\n0 4 * * * /usr/bin/updatedb\n"))
		runner.AddResult("crontab", []string{"-u", "root", "-"}, ports.CommandResult{ExitCode: 0})

		require.NoError(t, NewCrontabStep(installRoot, runner).Apply(runCtx()))

		calls := runner.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, "0 4 * * * /usr/bin/updatedb\n", calls[1].Stdin)
	})

	t.Run("drops the crontab when nothing remains", func(t *testing.T) {
		t.Parallel()

		runner := ports.NewMockCommandRunner()
		runner.AddResult("crontab", []string{"-l", "-u", "root"},
			listResult("0 3 * * * /usr/local/orbit/bin/backup\n"))
		runner.AddResult("crontab", []string{"-r", "-u", "root"}, ports.CommandResult{ExitCode: 0})

		require.NoError(t, NewCrontabStep(installRoot, runner).Apply(runCtx()))
		assert.True(t, runner.Called("crontab", "-r", "-u", "root"))
	})
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	t.Run("uses crontab_match", func(t *testing.T) {
		t.Parallel()

		man := &manifest.Manifest{System: manifest.System{CrontabMatch: installRoot}}
		steps, err := NewProvider(ports.NewMockCommandRunner()).Compile(step.NewCompileContext(man))
		require.NoError(t, err)
		assert.Len(t, steps, 1)
	})

	t.Run("falls back to install root", func(t *testing.T) {
		t.Parallel()

		man := &manifest.Manifest{Panel: manifest.Panel{InstallRoot: installRoot}}
		steps, err := NewProvider(ports.NewMockCommandRunner()).Compile(step.NewCompileContext(man))
		require.NoError(t, err)
		assert.Len(t, steps, 1)
	})

	t.Run("nothing to match compiles nothing", func(t *testing.T) {
		t.Parallel()

		steps, err := NewProvider(ports.NewMockCommandRunner()).Compile(step.NewCompileContext(&manifest.Manifest{}))
		require.NoError(t, err)
		assert.Empty(t, steps)
	})
}
