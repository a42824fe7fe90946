package files

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// RemovePathStep deletes one filesystem entry, recursively.
type RemovePathStep struct {
	path string
	id   step.StepID
	fs   ports.FileSystem
}

// NewRemovePathStep creates a new RemovePathStep.
func NewRemovePathStep(path string, fs ports.FileSystem) *RemovePathStep {
	return &RemovePathStep{
		path: path,
		id:   step.MustNewStepID("files:remove:" + path),
		fs:   fs,
	}
}

// ID returns the step identifier.
func (s *RemovePathStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *RemovePathStep) Describe() string {
	return fmt.Sprintf("Remove %s", s.path)
}

// Check reports satisfied when the path is gone.
func (s *RemovePathStep) Check(step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.path) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *RemovePathStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("path", s.path, "delete"), nil
}

// Apply deletes the path and everything below it.
func (s *RemovePathStep) Apply(step.RunContext) error {
	if err := s.fs.RemoveAll(s.path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

// ConfirmedRemoveStep is a RemovePathStep gated behind a prompt. Used
// for the ACME certificate store and for operator-entered directories.
type ConfirmedRemoveStep struct {
	RemovePathStep
	prompt string
}

// NewConfirmedRemoveStep creates a new ConfirmedRemoveStep.
func NewConfirmedRemoveStep(path, prompt string, fs ports.FileSystem) *ConfirmedRemoveStep {
	return &ConfirmedRemoveStep{
		RemovePathStep: RemovePathStep{
			path: path,
			id:   step.MustNewStepID("files:remove:" + path),
			fs:   fs,
		},
		prompt: prompt,
	}
}

// ConfirmPrompt returns the question asked before deletion.
func (s *ConfirmedRemoveStep) ConfirmPrompt() string {
	return s.prompt
}

// GlobRemoveStep deletes everything matching a shell pattern.
type GlobRemoveStep struct {
	pattern string
	id      step.StepID
	fs      ports.FileSystem
}

// NewGlobRemoveStep creates a new GlobRemoveStep.
func NewGlobRemoveStep(pattern string, fs ports.FileSystem) *GlobRemoveStep {
	return &GlobRemoveStep{
		pattern: pattern,
		id:      step.MustNewStepID("files:remove-glob:" + pattern),
		fs:      fs,
	}
}

// ID returns the step identifier.
func (s *GlobRemoveStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *GlobRemoveStep) Describe() string {
	return fmt.Sprintf("Remove files matching %s", s.pattern)
}

// Check reports satisfied when nothing matches.
func (s *GlobRemoveStep) Check(step.RunContext) (step.Status, error) {
	matches, err := s.fs.Glob(s.pattern)
	if err != nil {
		return step.StatusUnknown, err
	}
	if len(matches) == 0 {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *GlobRemoveStep) Plan(step.RunContext) (step.Diff, error) {
	matches, err := s.fs.Glob(s.pattern)
	if err != nil {
		return step.Diff{}, err
	}
	return step.NewDiff("path", s.pattern, strings.Join(matches, ", ")), nil
}

// Apply deletes every match; failures are collected, not short-circuited.
func (s *GlobRemoveStep) Apply(step.RunContext) error {
	matches, err := s.fs.Glob(s.pattern)
	if err != nil {
		return err
	}

	var errs []error
	for _, match := range matches {
		if err := s.fs.RemoveAll(match); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", match, err))
		}
	}
	return errors.Join(errs...)
}
