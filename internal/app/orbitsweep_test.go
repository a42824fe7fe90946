package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/adapters/logging"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

type yesConfirmer struct{}

func (yesConfirmer) Confirm(context.Context, string) bool { return true }

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Panel: manifest.Panel{Name: "orbit", InstallRoot: "/usr/local/orbit"},
		Services: manifest.Services{
			Stop: []string{"orbitd"},
		},
		Paths: manifest.Paths{
			Remove: []string{"/var/log/orbit"},
		},
		System: manifest.System{CrontabMatch: "/usr/local/orbit"},
	}
}

func scriptedRunner() *ports.MockCommandRunner {
	runner := ports.NewMockCommandRunner()
	runner.AddResult("dnf", []string{"--version"}, ports.CommandResult{ExitCode: 0, Stdout: "4.14.0\n"})
	runner.AddResult("systemctl", []string{"is-active", "--quiet", "orbitd"}, ports.CommandResult{ExitCode: 3})
	runner.AddResult("systemctl", []string{"is-enabled", "orbitd"}, ports.CommandResult{ExitCode: 1, Stdout: "disabled\n"})
	runner.AddResult("crontab", []string{"-l", "-u", "root"}, ports.CommandResult{ExitCode: 1, Stderr: "no crontab for root"})
	return runner
}

func TestOrbitsweep_PlanCleanHost(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	o := NewWithDeps(&out, logging.NewNopLogger(), ports.NewMockFileSystem(), scriptedRunner())

	plan, err := o.Plan(context.Background(), testManifest(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Len())
	assert.False(t, plan.HasChanges())

	o.PrintPlan(plan)
	assert.Contains(t, out.String(), "Nothing to remove")
}

func TestOrbitsweep_PlanAndRunRemovesLeftovers(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/var/log/orbit/system.log", []byte("..."))

	var out bytes.Buffer
	o := NewWithDeps(&out, logging.NewNopLogger(), fs, scriptedRunner())

	plan, err := o.Plan(context.Background(), testManifest(), nil)
	require.NoError(t, err)
	assert.True(t, plan.HasChanges())

	rep := o.Run(context.Background(), plan, yesConfirmer{}, false)
	require.NotNil(t, rep)
	assert.False(t, fs.Exists("/var/log/orbit"))
	assert.False(t, rep.HasFailures())

	summary := rep.Summary()
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 2, summary.Absent)

	o.PrintResults(rep)
	assert.Contains(t, out.String(), "Removal Results")
	assert.Contains(t, out.String(), "1 removed")
}

func TestOrbitsweep_DryRunMutatesNothing(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/var/log/orbit/system.log", []byte("..."))

	var out bytes.Buffer
	o := NewWithDeps(&out, logging.NewNopLogger(), fs, scriptedRunner())

	plan, err := o.Plan(context.Background(), testManifest(), nil)
	require.NoError(t, err)

	rep := o.Run(context.Background(), plan, yesConfirmer{}, true)
	assert.True(t, fs.Exists("/var/log/orbit/system.log"))
	assert.Equal(t, 0, rep.Summary().Removed)
}

func TestOrbitsweep_ExtraDirsBecomeConfirmedSteps(t *testing.T) {
	t.Parallel()

	fs := ports.NewMockFileSystem()
	fs.AddFile("/backup/orbit/dump.sql", nil)

	var out bytes.Buffer
	o := NewWithDeps(&out, logging.NewNopLogger(), fs, scriptedRunner())

	plan, err := o.Plan(context.Background(), testManifest(), []string{"/backup/orbit"})
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Len())

	rep := o.Run(context.Background(), plan, yesConfirmer{}, false)
	assert.False(t, fs.Exists("/backup/orbit"))
	assert.False(t, rep.HasFailures())
}

func TestOrbitsweep_LoadManifestDefault(t *testing.T) {
	t.Parallel()

	o := NewWithDeps(&bytes.Buffer{}, logging.NewNopLogger(), ports.NewMockFileSystem(), scriptedRunner())

	man, err := o.LoadManifest("")
	require.NoError(t, err)
	assert.Equal(t, "orbit", man.Panel.Name)
}
