package repo

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// RepoFileStep deletes the panel's yum repo definition after verifying
// it actually points at the panel's repository host.
type RepoFileStep struct {
	path string
	host string
	id   step.StepID
	fs   ports.FileSystem
}

// NewRepoFileStep creates a new RepoFileStep.
func NewRepoFileStep(path, host string, fs ports.FileSystem) *RepoFileStep {
	return &RepoFileStep{
		path: path,
		host: host,
		id:   step.MustNewStepID("repo:remove:" + path),
		fs:   fs,
	}
}

// ID returns the step identifier.
func (s *RepoFileStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *RepoFileStep) Describe() string {
	return fmt.Sprintf("Remove package repository %s", s.path)
}

// Check reports satisfied when the repo file is gone.
func (s *RepoFileStep) Check(step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.path) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *RepoFileStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("repo", s.path, "delete"), nil
}

// Apply verifies the file's baseurl and deletes it.
func (s *RepoFileStep) Apply(step.RunContext) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if s.host != "" {
		cfg, err := ini.Load(data)
		if err != nil {
			return fmt.Errorf("refusing to delete %s: not a parseable repo file: %w", s.path, err)
		}
		if !s.pointsAtHost(cfg) {
			return fmt.Errorf("refusing to delete %s: no baseurl references %s", s.path, s.host)
		}
	}

	if err := s.fs.Remove(s.path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

func (s *RepoFileStep) pointsAtHost(cfg *ini.File) bool {
	for _, section := range cfg.Sections() {
		for _, key := range []string{"baseurl", "mirrorlist"} {
			if section.HasKey(key) && strings.Contains(section.Key(key).String(), s.host) {
				return true
			}
		}
	}
	return false
}
