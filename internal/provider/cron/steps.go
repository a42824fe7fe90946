package cron

import (
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// CrontabStep removes root crontab lines referencing the install root.
// The crontab is rewritten through `crontab -`; when nothing remains it
// is dropped entirely with `crontab -r`.
type CrontabStep struct {
	match  string
	id     step.StepID
	runner ports.CommandRunner
}

// NewCrontabStep creates a new CrontabStep.
func NewCrontabStep(match string, runner ports.CommandRunner) *CrontabStep {
	return &CrontabStep{
		match:  match,
		id:     step.MustNewStepID("cron:root-crontab"),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *CrontabStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *CrontabStep) Describe() string {
	return "Remove panel entries from root's crontab"
}

// current returns root's crontab lines, or nil when no crontab exists.
// A nonzero exit that isn't "no crontab" (a permission failure, say) is
// an error; reading nothing must not pass for an empty crontab.
func (s *CrontabStep) current(ctx step.RunContext) ([]string, error) {
	result, err := s.runner.Run(ctx.Context(), "crontab", "-l", "-u", "root")
	if err != nil {
		return nil, err
	}
	if !result.Success() {
		if strings.Contains(result.Stderr, "no crontab") {
			return nil, nil
		}
		return nil, fmt.Errorf("crontab could not be read: %s", strings.TrimSpace(result.Stderr))
	}
	return strings.Split(strings.TrimRight(result.Stdout, "\n"), "\n"), nil
}

func (s *CrontabStep) split(lines []string) (keep, drop []string) {
	for _, line := range lines {
		if strings.Contains(line, s.match) {
			drop = append(drop, line)
			continue
		}
		keep = append(keep, line)
	}
	return keep, drop
}

// Check reports satisfied when no line references the install root.
func (s *CrontabStep) Check(ctx step.RunContext) (step.Status, error) {
	lines, err := s.current(ctx)
	if err != nil {
		return step.StatusUnknown, err
	}
	_, drop := s.split(lines)
	if len(drop) == 0 {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *CrontabStep) Plan(ctx step.RunContext) (step.Diff, error) {
	lines, err := s.current(ctx)
	if err != nil {
		return step.Diff{}, err
	}
	_, drop := s.split(lines)
	return step.NewDiff("crontab", "root", fmt.Sprintf("%d entries", len(drop))), nil
}

// Apply rewrites the crontab without the panel's lines.
func (s *CrontabStep) Apply(ctx step.RunContext) error {
	lines, err := s.current(ctx)
	if err != nil {
		return err
	}

	keep, drop := s.split(lines)
	if len(drop) == 0 {
		return nil
	}

	if len(keep) == 0 {
		result, err := s.runner.Run(ctx.Context(), "crontab", "-r", "-u", "root")
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("crontab -r failed: %s", strings.TrimSpace(result.Stderr))
		}
		return nil
	}

	stdin := strings.Join(keep, "\n") + "\n"
	result, err := s.runner.RunInput(ctx.Context(), stdin, "crontab", "-u", "root", "-")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("crontab rewrite failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}
