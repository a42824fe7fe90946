package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/orbitpanel/orbitsweep/internal/adapters/prompt"
	"github.com/orbitpanel/orbitsweep/internal/app"
	"github.com/orbitpanel/orbitsweep/internal/domain/execution"
	"github.com/orbitpanel/orbitsweep/internal/validation"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the panel and everything it installed",
	Long: `Uninstall stops the panel services, removes its packages, deletes its
users and files, and restores the system configuration the installer
changed.

The run is best effort: a failed step is recorded and the run continues.
Destructive steps ask for confirmation first; answering anything but yes
skips the step and leaves its target untouched. Use --yes to approve
everything up front, or --dry-run to see what would happen without
changing anything. The final reboot offer is always asked, even with
--yes.`,
	RunE: runUninstall,
}

var (
	uninstallDryRun     bool
	uninstallReportPath string
)

// Seams for tests.
var (
	geteuid  = os.Geteuid
	newSweep = func(out io.Writer) *app.Orbitsweep {
		return app.New(out, newLogger())
	}
)

func init() {
	rootCmd.AddCommand(uninstallCmd)

	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Show what would be removed without making changes")
	uninstallCmd.Flags().StringVar(&uninstallReportPath, "report", "", "Write a YAML removal report to this path")
}

func runUninstall(_ *cobra.Command, _ []string) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	return uninstall(os.Stdin, os.Stdout, interactive)
}

func uninstall(in io.Reader, out io.Writer, interactive bool) error {
	ctx := context.Background()

	if !uninstallDryRun && geteuid() != 0 {
		return errors.New("this command must be run as root")
	}

	sweep := newSweep(out)

	man, err := sweep.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "This will remove the %s control panel, its services, packages and data from this server.\n\n", man.Panel.Name)

	// Every prompt in the run goes through this one confirmer so piped
	// answers are consumed in order.
	terminal := prompt.NewTerminalConfirmer(
		prompt.WithInput(in),
		prompt.WithOutput(out),
		prompt.WithInteractive(interactive),
	)

	if !yesFlag && !uninstallDryRun {
		if !terminal.Confirm(ctx, "Proceed with the removal?") {
			fmt.Fprintln(out, "Aborted. Nothing was changed.")
			return nil
		}
	}

	var extraDirs []string
	if interactive && !yesFlag && !uninstallDryRun {
		extraDirs = promptExtraDirs(terminal, out)
	}

	plan, err := sweep.Plan(ctx, man, extraDirs)
	if err != nil {
		return err
	}
	sweep.PrintPlan(plan)

	var confirmer execution.Confirmer = terminal
	if yesFlag {
		confirmer = prompt.NewAutoConfirmer()
	}

	report := sweep.Run(ctx, plan, confirmer, uninstallDryRun)
	sweep.PrintResults(report)

	if uninstallReportPath != "" {
		if err := sweep.WriteReport(uninstallReportPath, report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write report: %v\n", err)
		}
	}

	// Rebooting is never auto-approved; --yes covers the removal
	// prompts, not taking the whole host down.
	if !uninstallDryRun {
		if terminal.Confirm(ctx, "Reboot the server now to complete the cleanup?") {
			if err := sweep.Reboot(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "warning: reboot request failed: %v\n", err)
			}
		}
	}

	return nil
}

// lineReader is the free-text input surface shared with the prompts.
type lineReader interface {
	ReadLine() (string, bool)
}

// promptExtraDirs reads additional directories to delete, one per line.
// The operator confirms each of these again before it is removed, so an
// accidental entry here is not yet a commitment.
func promptExtraDirs(in lineReader, out io.Writer) []string {
	fmt.Fprintln(out, "Additional directories to remove (absolute paths, one per line, empty line to finish):")

	var dirs []string
	for {
		line, ok := in.ReadLine()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if err := validation.ValidateAbsolutePath(line); err != nil {
			fmt.Fprintf(out, "skipping %q: %v\n", line, err)
			continue
		}
		dirs = append(dirs, line)
	}
	return dirs
}
