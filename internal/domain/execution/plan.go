package execution

import (
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

// PlanEntry is a single step's planned execution.
type PlanEntry struct {
	step     step.Step
	status   step.Status
	diff     step.Diff
	checkErr error
}

// NewPlanEntry creates a new PlanEntry.
func NewPlanEntry(s step.Step, status step.Status, diff step.Diff) PlanEntry {
	return PlanEntry{step: s, status: status, diff: diff}
}

// WithCheckError returns a copy carrying a failed Check's error.
func (e PlanEntry) WithCheckError(err error) PlanEntry {
	e.checkErr = err
	return e
}

// Step returns the step to be executed.
func (e PlanEntry) Step() step.Step {
	return e.step
}

// Status returns the step's planned status.
func (e PlanEntry) Status() step.Status {
	return e.status
}

// Diff returns the planned removal.
func (e PlanEntry) Diff() step.Diff {
	return e.diff
}

// CheckError returns the error Check produced, if any.
func (e PlanEntry) CheckError() error {
	return e.checkErr
}

// PlanSummary provides aggregate statistics about the plan.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
}

// Plan is the ordered plan for the whole run.
type Plan struct {
	entries []PlanEntry
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{entries: make([]PlanEntry, 0)}
}

// Add appends a plan entry.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns all plan entries in order.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// HasChanges returns true if any step has something left to remove.
func (p *Plan) HasChanges() bool {
	for _, e := range p.entries {
		if e.status.NeedsAction() {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.status {
		case step.StatusNeedsApply:
			summary.NeedsApply++
		case step.StatusSatisfied:
			summary.Satisfied++
		default:
			summary.Unknown++
		}
	}
	return summary
}
