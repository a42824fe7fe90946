// Package execution handles planning and the best-effort run.
package execution

import (
	"time"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

// StepResult captures the outcome of a single step.
type StepResult struct {
	stepID      step.StepID
	label       string
	status      step.Status
	err         error
	remediation string
	duration    time.Duration
	diff        step.Diff
	applied     bool
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.StepID, label string, status step.Status, err error) StepResult {
	return StepResult{stepID: stepID, label: label, status: status, err: err}
}

// StepID returns the step identifier.
func (r StepResult) StepID() step.StepID {
	return r.stepID
}

// Label returns the step's human-readable label.
func (r StepResult) Label() string {
	return r.label
}

// Status returns the outcome status.
func (r StepResult) Status() step.Status {
	return r.status
}

// Error returns the step's error, if any.
func (r StepResult) Error() error {
	return r.err
}

// Remediation returns manual-recovery guidance for a failed step, if any.
func (r StepResult) Remediation() string {
	return r.remediation
}

// Duration returns how long Apply took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the change the step performed or would perform.
func (r StepResult) Diff() step.Diff {
	return r.diff
}

// WithDuration returns a copy with the duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a copy with the diff set.
func (r StepResult) WithDiff(d step.Diff) StepResult {
	r.diff = d
	return r
}

// WithRemediation returns a copy with remediation guidance set.
func (r StepResult) WithRemediation(text string) StepResult {
	r.remediation = text
	return r
}

// Applied reports whether the step actually mutated the system, as
// opposed to finding its target already absent.
func (r StepResult) Applied() bool {
	return r.applied
}

// WithApplied returns a copy marked as having mutated the system.
func (r StepResult) WithApplied() StepResult {
	r.applied = true
	return r
}
