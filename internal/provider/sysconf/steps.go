package sysconf

import (
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// SELinuxStep restores the pre-install SELinux configuration from the
// copy the installer saved. Restoring changes the enforcement mode, so
// the step is confirmed.
type SELinuxStep struct {
	config string
	saved  string
	id     step.StepID
	fs     ports.FileSystem
}

// NewSELinuxStep creates a new SELinuxStep.
func NewSELinuxStep(config, saved string, fs ports.FileSystem) *SELinuxStep {
	return &SELinuxStep{
		config: config,
		saved:  saved,
		id:     step.MustNewStepID("sysconf:selinux:" + config),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *SELinuxStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *SELinuxStep) Describe() string {
	return "Restore pre-install SELinux configuration"
}

// ConfirmPrompt returns the question asked before restoring.
func (s *SELinuxStep) ConfirmPrompt() string {
	return fmt.Sprintf("Restore the SELinux configuration saved at %s? The current enforcement mode will be replaced.", s.saved)
}

// Check reports satisfied when no saved copy remains.
func (s *SELinuxStep) Check(step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.saved) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *SELinuxStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("config", s.config, "restore from "+s.saved), nil
}

// Apply copies the saved configuration back and drops the saved copy.
func (s *SELinuxStep) Apply(step.RunContext) error {
	if err := s.fs.CopyFile(s.saved, s.config); err != nil {
		return fmt.Errorf("failed to restore %s: %w", s.config, err)
	}
	if err := s.fs.Remove(s.saved); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.saved, err)
	}
	return nil
}

// MarkerLineStep removes every line carrying the installer's marker
// comment from one file. Used for /etc/hosts and limits.conf.
type MarkerLineStep struct {
	path   string
	marker string
	id     step.StepID
	fs     ports.FileSystem
}

// NewMarkerLineStep creates a new MarkerLineStep.
func NewMarkerLineStep(path, marker string, fs ports.FileSystem) *MarkerLineStep {
	return &MarkerLineStep{
		path:   path,
		marker: marker,
		id:     step.MustNewStepID("sysconf:marker-lines:" + path),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *MarkerLineStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *MarkerLineStep) Describe() string {
	return fmt.Sprintf("Remove panel entries from %s", s.path)
}

// Check reports satisfied when no marked lines remain.
func (s *MarkerLineStep) Check(step.RunContext) (step.Status, error) {
	if !s.fs.Exists(s.path) {
		return step.StatusSatisfied, nil
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return step.StatusUnknown, err
	}
	if hasLine(string(data), s.matches) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *MarkerLineStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("config", s.path, "remove lines tagged "+s.marker), nil
}

// Apply strips the marked lines in place.
func (s *MarkerLineStep) Apply(step.RunContext) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	content, changed := stripLines(string(data), s.matches)
	if !changed {
		return nil
	}

	if err := s.fs.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	return nil
}

func (s *MarkerLineStep) matches(line string) bool {
	return strings.Contains(line, s.marker)
}

// ManagedBlockStep removes the installer's marker-delimited block from a
// file, rc.local being the one case in practice.
type ManagedBlockStep struct {
	path   string
	marker string
	id     step.StepID
	fs     ports.FileSystem
}

// NewManagedBlockStep creates a new ManagedBlockStep.
func NewManagedBlockStep(path, marker string, fs ports.FileSystem) *ManagedBlockStep {
	return &ManagedBlockStep{
		path:   path,
		marker: marker,
		id:     step.MustNewStepID("sysconf:managed-block:" + path),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *ManagedBlockStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *ManagedBlockStep) Describe() string {
	return fmt.Sprintf("Remove panel block from %s", s.path)
}

// Check reports satisfied when no managed block remains.
func (s *ManagedBlockStep) Check(step.RunContext) (step.Status, error) {
	if !s.fs.Exists(s.path) {
		return step.StatusSatisfied, nil
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return step.StatusUnknown, err
	}
	if hasManagedBlock(string(data), s.marker) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *ManagedBlockStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("config", s.path, "remove managed block"), nil
}

// Apply removes the block in place.
func (s *ManagedBlockStep) Apply(step.RunContext) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	content, changed := removeManagedBlock(string(data), s.marker)
	if !changed {
		return nil
	}

	if err := s.fs.WriteFile(s.path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	return nil
}

// SysctlStep removes the kernel parameters the installer set, matched by
// key name, plus any marker comment lines.
type SysctlStep struct {
	path   string
	keys   []string
	marker string
	id     step.StepID
	fs     ports.FileSystem
}

// NewSysctlStep creates a new SysctlStep.
func NewSysctlStep(path string, keys []string, marker string, fs ports.FileSystem) *SysctlStep {
	return &SysctlStep{
		path:   path,
		keys:   keys,
		marker: marker,
		id:     step.MustNewStepID("sysconf:sysctl:" + path),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *SysctlStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *SysctlStep) Describe() string {
	return fmt.Sprintf("Remove panel kernel parameters from %s", s.path)
}

// Check reports satisfied when none of the managed keys remain.
func (s *SysctlStep) Check(step.RunContext) (step.Status, error) {
	if !s.fs.Exists(s.path) {
		return step.StatusSatisfied, nil
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return step.StatusUnknown, err
	}
	if hasLine(string(data), s.matches) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *SysctlStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("config", s.path, strings.Join(s.keys, ", ")), nil
}

// Apply strips the managed keys in place.
func (s *SysctlStep) Apply(step.RunContext) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	content, changed := stripLines(string(data), s.matches)
	if !changed {
		return nil
	}

	if err := s.fs.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	return nil
}

func (s *SysctlStep) matches(line string) bool {
	if s.marker != "" && strings.Contains(line, s.marker) {
		return true
	}
	key, _, found := strings.Cut(line, "=")
	if !found {
		return false
	}
	key = strings.TrimSpace(key)
	for _, managed := range s.keys {
		if key == managed {
			return true
		}
	}
	return false
}

// RestoreFileStep moves an installer-saved copy back over the live file.
// Used for resolv.conf.
type RestoreFileStep struct {
	config string
	saved  string
	id     step.StepID
	fs     ports.FileSystem
}

// NewRestoreFileStep creates a new RestoreFileStep.
func NewRestoreFileStep(config, saved string, fs ports.FileSystem) *RestoreFileStep {
	return &RestoreFileStep{
		config: config,
		saved:  saved,
		id:     step.MustNewStepID("sysconf:restore:" + config),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *RestoreFileStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *RestoreFileStep) Describe() string {
	return fmt.Sprintf("Restore %s from %s", s.config, s.saved)
}

// Check reports satisfied when no saved copy remains.
func (s *RestoreFileStep) Check(step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.saved) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *RestoreFileStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("config", s.config, "restore from "+s.saved), nil
}

// Apply renames the saved copy over the live file.
func (s *RestoreFileStep) Apply(step.RunContext) error {
	if err := s.fs.Rename(s.saved, s.config); err != nil {
		return fmt.Errorf("failed to restore %s: %w", s.config, err)
	}
	return nil
}
