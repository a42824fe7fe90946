package execution

import (
	"time"

	"github.com/google/uuid"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

// Report is the full record of one run: an identifier, the time window
// and one outcome per step, in execution order.
type Report struct {
	runID      string
	startedAt  time.Time
	finishedAt time.Time
	results    []StepResult
}

// ReportSummary aggregates result counts.
type ReportSummary struct {
	Total    int
	Removed  int // applied successfully
	Absent   int // already satisfied, nothing done
	Failed   int
	Skipped  int // operator declined
	Planned  int // dry-run entries that would apply
}

// NewReport creates a Report with a fresh run ID.
func NewReport() *Report {
	return &Report{
		runID:     uuid.NewString(),
		startedAt: time.Now().UTC(),
	}
}

// Append records a step outcome.
func (r *Report) Append(result StepResult) {
	r.results = append(r.results, result)
}

// Finish stamps the end of the run.
func (r *Report) Finish() {
	r.finishedAt = time.Now().UTC()
}

// RunID returns the run identifier.
func (r *Report) RunID() string {
	return r.runID
}

// StartedAt returns the run start time.
func (r *Report) StartedAt() time.Time {
	return r.startedAt
}

// FinishedAt returns the run end time.
func (r *Report) FinishedAt() time.Time {
	return r.finishedAt
}

// Results returns all step outcomes in execution order.
func (r *Report) Results() []StepResult {
	return r.results
}

// HasFailures reports whether any step failed.
func (r *Report) HasFailures() bool {
	for i := range r.results {
		if r.results[i].Status() == step.StatusFailed {
			return true
		}
	}
	return false
}

// Summary returns aggregate counts.
func (r *Report) Summary() ReportSummary {
	summary := ReportSummary{Total: len(r.results)}
	for i := range r.results {
		res := r.results[i]
		switch res.Status() {
		case step.StatusSatisfied:
			if res.Applied() {
				summary.Removed++
			} else {
				summary.Absent++
			}
		case step.StatusFailed:
			summary.Failed++
		case step.StatusSkipped:
			summary.Skipped++
		case step.StatusNeedsApply, step.StatusUnknown:
			summary.Planned++
		}
	}
	return summary
}
