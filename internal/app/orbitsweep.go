// Package app wires the adapters, providers and runner together and
// renders the human-facing output.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/orbitpanel/orbitsweep/internal/adapters/command"
	"github.com/orbitpanel/orbitsweep/internal/adapters/filesystem"
	reportadapter "github.com/orbitpanel/orbitsweep/internal/adapters/report"
	"github.com/orbitpanel/orbitsweep/internal/domain/discover"
	"github.com/orbitpanel/orbitsweep/internal/domain/execution"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/orbitpanel/orbitsweep/internal/provider/cron"
	"github.com/orbitpanel/orbitsweep/internal/provider/files"
	"github.com/orbitpanel/orbitsweep/internal/provider/repo"
	"github.com/orbitpanel/orbitsweep/internal/provider/rpm"
	"github.com/orbitpanel/orbitsweep/internal/provider/sysconf"
	"github.com/orbitpanel/orbitsweep/internal/provider/systemd"
	"github.com/orbitpanel/orbitsweep/internal/provider/users"
)

// Orbitsweep is the main application orchestrator.
type Orbitsweep struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
	logger ports.Logger
	writer *reportadapter.YAMLWriter
	out    io.Writer
}

// New creates the application with the real adapters.
func New(out io.Writer, logger ports.Logger) *Orbitsweep {
	return NewWithDeps(out, logger, filesystem.NewRealFileSystem(), command.NewRealRunner())
}

// NewWithDeps creates the application with explicit adapters. Tests use
// this to swap in the mocks.
func NewWithDeps(out io.Writer, logger ports.Logger, fs ports.FileSystem, runner ports.CommandRunner) *Orbitsweep {
	return &Orbitsweep{
		fs:     fs,
		runner: runner,
		logger: logger,
		writer: reportadapter.NewYAMLWriter(),
		out:    out,
	}
}

// LoadManifest loads the removal manifest: the embedded default, or an
// override file.
func (o *Orbitsweep) LoadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.Default()
	}
	return manifest.Load(o.fs, path)
}

// Plan discovers the install, compiles every provider's steps in removal
// order and checks their live status.
func (o *Orbitsweep) Plan(ctx context.Context, man *manifest.Manifest, extraDirs []string) (*execution.Plan, error) {
	facts, err := discover.Inspect(o.fs, man)
	if err != nil {
		return nil, err
	}

	if facts.Installed {
		o.logger.Info(ctx, "panel install found",
			ports.F("root", facts.InstallRoot),
			ports.F("version", facts.Version))
	} else {
		o.logger.Info(ctx, "no panel install found, checking for leftovers")
	}

	pm := o.detectPackageManager(ctx)
	o.logger.Debug(ctx, "package manager selected", ports.F("pm", pm))

	registry := step.NewRegistry()
	registry.Register(systemd.NewProvider(o.runner, o.fs))
	registry.Register(rpm.NewProvider(o.runner, pm))
	registry.Register(files.NewProvider(o.fs))
	registry.Register(sysconf.NewProvider(o.fs))
	registry.Register(repo.NewProvider(o.fs))
	registry.Register(cron.NewProvider(o.runner))
	registry.Register(users.NewProvider(o.runner, o.fs))

	cctx := step.NewCompileContext(man).WithFacts(facts).WithExtraDirs(extraDirs)
	list, err := registry.Compile(cctx)
	if err != nil {
		return nil, err
	}

	return execution.NewPlanner().Plan(ctx, list), nil
}

// Run executes the plan best-effort and returns the report.
func (o *Orbitsweep) Run(ctx context.Context, plan *execution.Plan, confirmer execution.Confirmer, dryRun bool) *execution.Report {
	runner := execution.NewRunner(confirmer).WithDryRun(dryRun)
	return runner.Run(ctx, plan)
}

// WriteReport persists the run report as YAML.
func (o *Orbitsweep) WriteReport(path string, rep *execution.Report) error {
	return o.writer.Write(path, rep)
}

// Reboot asks systemd to reboot the host.
func (o *Orbitsweep) Reboot(ctx context.Context) error {
	result, err := o.runner.Run(ctx, "systemctl", "reboot")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("reboot failed: %s", result.Stderr)
	}
	return nil
}

// detectPackageManager prefers dnf, falling back to yum on older hosts.
func (o *Orbitsweep) detectPackageManager(ctx context.Context) string {
	if result, err := o.runner.Run(ctx, "dnf", "--version"); err == nil && result.Success() {
		return "dnf"
	}
	return "yum"
}

// PrintPlan outputs a human-readable plan summary.
func (o *Orbitsweep) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	o.printf("\nRemoval Plan\n")
	o.printf("============\n\n")

	if !plan.HasChanges() {
		o.printf("Nothing to remove. The panel is already gone.\n")
		return
	}

	o.printf("Steps: %d total, %d to remove, %d already absent\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		glyph := "✓"
		if entry.Status() == step.StatusNeedsApply {
			glyph = "+"
		} else if entry.Status() == step.StatusUnknown {
			glyph = "?"
		}

		o.printf("  %s %s\n", glyph, entry.Step().Describe())

		if diff := entry.Diff(); !diff.IsEmpty() {
			o.printf("      %s\n", diff.Summary())
		}
		if err := entry.CheckError(); err != nil {
			o.printf("      check failed: %v\n", err)
		}
	}
}

// PrintResults outputs the run report.
func (o *Orbitsweep) PrintResults(rep *execution.Report) {
	summary := rep.Summary()

	o.printf("\nRemoval Results\n")
	o.printf("===============\n\n")

	for _, result := range rep.Results() {
		switch result.Status() {
		case step.StatusSatisfied:
			if result.Applied() {
				o.printf("  ✓ %s\n", result.Label())
			} else {
				o.printf("  ✓ %s (already absent)\n", result.Label())
			}
		case step.StatusFailed:
			o.printf("  ✗ %s: %v\n", result.Label(), result.Error())
			if remediation := result.Remediation(); remediation != "" {
				o.printf("\n%s\n\n", remediation)
			}
		case step.StatusSkipped:
			o.printf("  - %s (declined)\n", result.Label())
		case step.StatusNeedsApply:
			o.printf("  + %s (would remove)\n", result.Label())
		case step.StatusUnknown:
			o.printf("  ? %s\n", result.Label())
		}
	}

	o.printf("\nSummary: %d removed, %d already absent, %d failed, %d declined\n",
		summary.Removed, summary.Absent, summary.Failed, summary.Skipped)

	if rep.HasFailures() {
		o.printf("Some steps failed; review the messages above and re-run to retry.\n")
	}
}

func (o *Orbitsweep) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}
