package users

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// UserStep deletes one panel system account, its home directory and its
// website data. Account deletion is unrecoverable, so every user gets
// an individual prompt.
type UserStep struct {
	user   manifest.User
	id     step.StepID
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewUserStep creates a new UserStep.
func NewUserStep(user manifest.User, runner ports.CommandRunner, fs ports.FileSystem) *UserStep {
	return &UserStep{
		user:   user,
		id:     step.MustNewStepID("users:remove:" + user.Name),
		runner: runner,
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *UserStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *UserStep) Describe() string {
	return fmt.Sprintf("Remove system user %s", s.user.Name)
}

// ConfirmPrompt returns the question asked before deletion.
func (s *UserStep) ConfirmPrompt() string {
	if s.user.WebData != "" {
		return fmt.Sprintf("Delete user %s, their home directory, and the website data in %s?", s.user.Name, s.user.WebData)
	}
	return fmt.Sprintf("Delete user %s and their home directory?", s.user.Name)
}

// Check reports satisfied when neither the account nor the website data
// remain.
func (s *UserStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "id", "-u", s.user.Name)
	if err != nil {
		return step.StatusUnknown, err
	}
	if result.Success() {
		return step.StatusNeedsApply, nil
	}
	if s.user.WebData != "" && s.fs.Exists(s.user.WebData) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *UserStep) Plan(step.RunContext) (step.Diff, error) {
	detail := "account and home"
	if s.user.WebData != "" {
		detail += ", web data " + s.user.WebData
	}
	return step.NewDiff("user", s.user.Name, detail), nil
}

// Apply deletes the account, its group, and the website data. Partial
// failures are collected: the web data still goes even when userdel
// stumbles.
func (s *UserStep) Apply(ctx step.RunContext) error {
	var errs []error

	exists, err := s.runner.Run(ctx.Context(), "id", "-u", s.user.Name)
	if err != nil {
		return err
	}
	if exists.Success() {
		result, err := s.runner.Run(ctx.Context(), "userdel", "-r", s.user.Name)
		if err != nil {
			return err
		}
		if !result.Success() {
			errs = append(errs, fmt.Errorf("userdel %s failed: %s", s.user.Name, strings.TrimSpace(result.Stderr)))
		}

		// userdel usually takes the primary group with it; leftovers are
		// cleaned up quietly.
		_, _ = s.runner.Run(ctx.Context(), "groupdel", s.user.Name)
	}

	if s.user.WebData != "" {
		if err := s.fs.RemoveAll(s.user.WebData); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", s.user.WebData, err))
		}
	}

	return errors.Join(errs...)
}
