package step

import "fmt"

// Diff describes the removal a step is about to perform. Everything this
// tool does is a removal or a revert, so a diff is a resource kind, the
// resource name and an optional detail line.
type Diff struct {
	resource string
	name     string
	detail   string
}

// NewDiff creates a new Diff.
func NewDiff(resource, name, detail string) Diff {
	return Diff{resource: resource, name: name, detail: detail}
}

// Resource returns the resource kind (e.g., "package", "service", "path").
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name.
func (d Diff) Name() string {
	return d.name
}

// Detail returns the optional detail line.
func (d Diff) Detail() string {
	return d.detail
}

// Summary returns a human-readable summary of the removal.
func (d Diff) Summary() string {
	if d.detail != "" {
		return fmt.Sprintf("- %s %s (%s)", d.resource, d.name, d.detail)
	}
	return fmt.Sprintf("- %s %s", d.resource, d.name)
}

// IsEmpty returns true if this diff carries no change.
func (d Diff) IsEmpty() bool {
	return d.resource == "" && d.name == ""
}
