package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/orbitpanel/orbitsweep/internal/adapters/logging"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/ports"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	manifestPath string
	verbose      bool
	logJSON      bool
	yesFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "orbitsweep",
	Short: "Removes the Orbit control panel from a server",
	Long: `Orbitsweep tears down an Orbit control panel installation and everything
it dragged onto the host: services, packages, panel users, cron entries
and the system configuration the installer rewrote.

Every removal is best effort. A step that fails is recorded and the run
moves on, so one stubborn package never leaves the host half cleaned
with no report of what happened.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "removal manifest (default: built-in Orbit manifest)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON lines")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")

	// Complete --manifest with YAML files
	_ = rootCmd.RegisterFlagCompletionFunc("manifest", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the logger the global flags ask for. Logs go to stderr
// so the plan and result output on stdout stays clean.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
		logging.WithJSONFormat(logJSON),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *manifest.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
