// Package step defines the idempotent removal step model and the
// provider pipeline that compiles a manifest into an ordered step list.
package step

// Step is one idempotent, independently skippable system-mutation unit.
// Check reports whether the target still exists; Apply removes it.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Describe returns a short human-readable label for progress output.
	Describe() string

	// Check determines the current status of this step.
	// Returns StatusSatisfied when the target is already absent and
	// StatusNeedsApply when there is something left to remove.
	Check(ctx RunContext) (Status, error)

	// Plan returns the diff describing what this step will remove.
	Plan(ctx RunContext) (Diff, error)

	// Apply performs the removal. Running it twice must be safe.
	Apply(ctx RunContext) error
}

// Destructive marks a step whose consequences the operator must confirm
// before Apply runs. Anything but an explicit yes declines the step.
type Destructive interface {
	Step

	// ConfirmPrompt returns the yes/no question describing the consequence.
	ConfirmPrompt() string
}

// Guarded marks a step that must never be force-retried on failure.
// Instead of escalating, the runner surfaces the remediation text and
// moves on.
type Guarded interface {
	Step

	// Remediation returns manual-recovery instructions for a failed Apply.
	Remediation() string
}

// AsDestructive attempts to cast a step to Destructive.
// Returns nil if the step needs no confirmation.
func AsDestructive(s Step) Destructive {
	if d, ok := s.(Destructive); ok {
		return d
	}
	return nil
}

// AsGuarded attempts to cast a step to Guarded.
// Returns nil if the step has no special failure policy.
func AsGuarded(s Step) Guarded {
	if g, ok := s.(Guarded); ok {
		return g
	}
	return nil
}
