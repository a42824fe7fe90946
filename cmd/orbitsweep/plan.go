package main

import (
	"context"
	"os"

	"github.com/orbitpanel/orbitsweep/internal/app"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what would be removed without changing anything",
	Long: `Plan inspects the host and prints every removal step with its current
state: what would be removed, what is already gone, and what could not
be determined.

Nothing is changed and nothing is prompted. Some checks (root crontab,
package queries) report unknown when run without root.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	sweep := app.New(os.Stdout, newLogger())

	man, err := sweep.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	plan, err := sweep.Plan(ctx, man, nil)
	if err != nil {
		return err
	}
	sweep.PrintPlan(plan)
	return nil
}
