package execution

import (
	"context"
	"time"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

// Confirmer asks the operator a yes/no question before a destructive
// step. Implementations must treat anything but an explicit yes as no.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Runner executes a plan best-effort: every step gets its turn and no
// step failure stops the run. The only things that end a run early are
// context cancellation between steps and the gates the CLI applies
// before the runner ever starts.
type Runner struct {
	confirmer Confirmer
	dryRun    bool
}

// NewRunner creates a Runner using the given Confirmer for destructive steps.
func NewRunner(confirmer Confirmer) *Runner {
	return &Runner{confirmer: confirmer}
}

// WithDryRun returns a Runner that reports what would happen without
// mutating anything or prompting anyone.
func (r *Runner) WithDryRun(dryRun bool) *Runner {
	return &Runner{confirmer: r.confirmer, dryRun: dryRun}
}

// Run executes all plan entries in order and returns the run report.
func (r *Runner) Run(ctx context.Context, plan *Plan) *Report {
	report := NewReport()
	runCtx := step.NewRunContext(ctx).WithDryRun(r.dryRun)

	for _, entry := range plan.Entries() {
		select {
		case <-ctx.Done():
			report.Finish()
			return report
		default:
		}
		report.Append(r.runEntry(entry, runCtx))
	}

	report.Finish()
	return report
}

// runEntry drives one step through its lifecycle.
func (r *Runner) runEntry(entry PlanEntry, ctx step.RunContext) StepResult {
	s := entry.Step()

	lc, err := newLifecycle()
	if err != nil {
		// The machine definition is static; failing to build it is a bug.
		panic("step lifecycle machine: " + err.Error())
	}
	defer lc.stop()

	// Target already absent: nothing to do, nothing to ask.
	if entry.Status() == step.StatusSatisfied {
		lc.send(eventSatisfied)
		return NewStepResult(s.ID(), s.Describe(), step.StatusSatisfied, nil)
	}

	// Check itself failed: record failed-continued without touching the target.
	if entry.CheckError() != nil {
		lc.send(eventApply)
		lc.send(eventFail)
		return NewStepResult(s.ID(), s.Describe(), step.StatusFailed, entry.CheckError())
	}

	if ctx.DryRun() {
		return NewStepResult(s.ID(), s.Describe(), entry.Status(), nil).WithDiff(entry.Diff())
	}

	if d := step.AsDestructive(s); d != nil {
		lc.send(eventConfirm)
		if !r.confirmer.Confirm(ctx.Context(), d.ConfirmPrompt()) {
			lc.send(eventDecline)
			return NewStepResult(s.ID(), s.Describe(), step.StatusSkipped, nil)
		}
		lc.send(eventApprove)
	} else {
		lc.send(eventApply)
	}

	start := time.Now()
	applyErr := s.Apply(ctx)
	duration := time.Since(start)

	if applyErr != nil {
		lc.send(eventFail)
		result := NewStepResult(s.ID(), s.Describe(), step.StatusFailed, applyErr).
			WithDuration(duration)
		if g := step.AsGuarded(s); g != nil {
			result = result.WithRemediation(g.Remediation())
		}
		return result
	}

	lc.send(eventSucceed)
	return NewStepResult(s.ID(), s.Describe(), step.StatusSatisfied, nil).
		WithDuration(duration).
		WithDiff(entry.Diff()).
		WithApplied()
}
