package execution

import (
	"context"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

// Planner checks every step's live status and builds the Plan.
// A failing Check never aborts planning: the entry is recorded as
// unknown and the run decides what to do with it.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks each step in declaration order.
func (p *Planner) Plan(ctx context.Context, list *step.List) *Plan {
	plan := NewPlan()
	runCtx := step.NewRunContext(ctx)

	for _, s := range list.Steps() {
		if ctx.Err() != nil {
			break
		}
		plan.Add(p.planStep(s, runCtx))
	}
	return plan
}

func (p *Planner) planStep(s step.Step, ctx step.RunContext) PlanEntry {
	status, err := s.Check(ctx)
	if err != nil {
		return NewPlanEntry(s, step.StatusUnknown, step.Diff{}).WithCheckError(err)
	}

	var diff step.Diff
	if status == step.StatusNeedsApply {
		// A Plan failure is not fatal either; the entry just loses its diff.
		if d, derr := s.Plan(ctx); derr == nil {
			diff = d
		}
	}
	return NewPlanEntry(s, status, diff)
}
