package systemd

import (
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// StopStep stops and disables a systemd unit.
type StopStep struct {
	unit   string
	id     step.StepID
	runner ports.CommandRunner
}

// NewStopStep creates a new StopStep.
func NewStopStep(unit string, runner ports.CommandRunner) *StopStep {
	return &StopStep{
		unit:   unit,
		id:     step.MustNewStepID("systemd:stop:" + unit),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *StopStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *StopStep) Describe() string {
	return fmt.Sprintf("Stop and disable service %s", s.unit)
}

// Check reports satisfied when the unit is neither active nor enabled.
func (s *StopStep) Check(ctx step.RunContext) (step.Status, error) {
	active, err := s.runner.Run(ctx.Context(), "systemctl", "is-active", "--quiet", s.unit)
	if err != nil {
		return step.StatusUnknown, err
	}
	if active.Success() {
		return step.StatusNeedsApply, nil
	}

	enabled, err := s.runner.Run(ctx.Context(), "systemctl", "is-enabled", s.unit)
	if err != nil {
		return step.StatusUnknown, err
	}
	if enabled.Success() && strings.TrimSpace(enabled.Stdout) == "enabled" {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *StopStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("service", s.unit, "stop and disable"), nil
}

// Apply stops the unit, then disables it.
func (s *StopStep) Apply(ctx step.RunContext) error {
	stop, err := s.runner.Run(ctx.Context(), "systemctl", "stop", s.unit)
	if err != nil {
		return err
	}
	if !stop.Success() && !strings.Contains(stop.Stderr, "not loaded") {
		return fmt.Errorf("systemctl stop %s failed: %s", s.unit, strings.TrimSpace(stop.Stderr))
	}

	// The unit file may already be gone; disable failure is not fatal.
	_, _ = s.runner.Run(ctx.Context(), "systemctl", "disable", s.unit)
	return nil
}

// UnmaskStep lifts a mask the installer put on a stock unit.
type UnmaskStep struct {
	unit   string
	id     step.StepID
	runner ports.CommandRunner
}

// NewUnmaskStep creates a new UnmaskStep.
func NewUnmaskStep(unit string, runner ports.CommandRunner) *UnmaskStep {
	return &UnmaskStep{
		unit:   unit,
		id:     step.MustNewStepID("systemd:unmask:" + unit),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *UnmaskStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *UnmaskStep) Describe() string {
	return fmt.Sprintf("Unmask service %s", s.unit)
}

// Check reports needs-apply only while the unit is masked.
func (s *UnmaskStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "systemctl", "is-enabled", s.unit)
	if err != nil {
		return step.StatusUnknown, err
	}
	if strings.TrimSpace(result.Stdout) == "masked" {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *UnmaskStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("service", s.unit, "unmask"), nil
}

// Apply unmasks the unit.
func (s *UnmaskStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "systemctl", "unmask", s.unit)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("systemctl unmask %s failed: %s", s.unit, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// UnitFileStep deletes a unit definition the installer dropped into
// /etc/systemd/system and reloads the daemon.
type UnitFileStep struct {
	path   string
	id     step.StepID
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewUnitFileStep creates a new UnitFileStep.
func NewUnitFileStep(path string, fs ports.FileSystem, runner ports.CommandRunner) *UnitFileStep {
	return &UnitFileStep{
		path:   path,
		id:     step.MustNewStepID("systemd:unit-file:" + path),
		fs:     fs,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *UnitFileStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *UnitFileStep) Describe() string {
	return fmt.Sprintf("Remove unit file %s", s.path)
}

// Check reports satisfied when the unit file is gone.
func (s *UnitFileStep) Check(step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.path) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *UnitFileStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("unit-file", s.path, "delete"), nil
}

// Apply deletes the unit file and reloads systemd.
func (s *UnitFileStep) Apply(ctx step.RunContext) error {
	if err := s.fs.Remove(s.path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	_, _ = s.runner.Run(ctx.Context(), "systemctl", "daemon-reload")
	return nil
}
