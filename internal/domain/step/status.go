package step

// Status represents the outcome state of a step.
type Status string

const (
	// StatusSatisfied indicates the target is already absent; nothing to do.
	StatusSatisfied Status = "satisfied"
	// StatusNeedsApply indicates there is something left to remove.
	StatusNeedsApply Status = "needs-apply"
	// StatusUnknown indicates the target state could not be determined.
	StatusUnknown Status = "unknown"
	// StatusFailed indicates the removal was attempted and failed.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the operator declined the step.
	StatusSkipped Status = "skipped"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// NeedsAction returns true if this status requires execution or attention.
func (s Status) NeedsAction() bool {
	switch s {
	case StatusNeedsApply, StatusUnknown, StatusFailed:
		return true
	case StatusSatisfied, StatusSkipped:
		return false
	}
	return false
}

// IsTerminal returns true if this status is a final per-step outcome.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSatisfied, StatusFailed, StatusSkipped:
		return true
	case StatusNeedsApply, StatusUnknown:
		return false
	}
	return false
}
