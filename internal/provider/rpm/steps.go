package rpm

import (
	"fmt"
	"strings"

	"github.com/orbitpanel/orbitsweep/internal/domain/step"
	"github.com/orbitpanel/orbitsweep/internal/ports"
)

// PackageStep removes one package through the package manager.
type PackageStep struct {
	pkg    string
	pm     string
	id     step.StepID
	runner ports.CommandRunner
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg, pm string, runner ports.CommandRunner) *PackageStep {
	return &PackageStep{
		pkg:    pkg,
		pm:     pm,
		id:     step.MustNewStepID("rpm:remove:" + pkg),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *PackageStep) Describe() string {
	return fmt.Sprintf("Remove package %s", s.pkg)
}

// Check reports satisfied when the package is not installed.
func (s *PackageStep) Check(ctx step.RunContext) (step.Status, error) {
	result, err := s.runner.Run(ctx.Context(), "rpm", "-q", s.pkg)
	if err != nil {
		return step.StatusUnknown, err
	}
	if result.Success() {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(step.RunContext) (step.Diff, error) {
	return step.NewDiff("package", s.pkg, "remove"), nil
}

// Apply removes the package.
func (s *PackageStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), s.pm, "-y", "remove", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s remove %s failed: %s", s.pm, s.pkg, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// GuardedPackageStep removes a package whose uninstall scriptlet can
// corrupt the host when forced: failure is only ever answered with the
// remediation text, never a retry.
type GuardedPackageStep struct {
	PackageStep
	remediation []string
}

// NewGuardedPackageStep creates a new GuardedPackageStep.
func NewGuardedPackageStep(pkg, pm string, remediation []string, runner ports.CommandRunner) *GuardedPackageStep {
	return &GuardedPackageStep{
		PackageStep: PackageStep{
			pkg:    pkg,
			pm:     pm,
			id:     step.MustNewStepID("rpm:remove:" + pkg),
			runner: runner,
		},
		remediation: remediation,
	}
}

// Remediation returns the manual-recovery instructions.
func (s *GuardedPackageStep) Remediation() string {
	return strings.Join(s.remediation, "\n")
}

// GlobStep removes every installed package matching a name glob, except
// the excluded ones (the guarded package is handled by its own step).
type GlobStep struct {
	glob    string
	pm      string
	exclude map[string]bool
	id      step.StepID
	runner  ports.CommandRunner
}

// NewGlobStep creates a new GlobStep.
func NewGlobStep(glob, pm string, exclude []string, runner ports.CommandRunner) *GlobStep {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	return &GlobStep{
		glob:    glob,
		pm:      pm,
		exclude: excluded,
		id:      step.MustNewStepID("rpm:remove-glob:" + glob),
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *GlobStep) ID() step.StepID {
	return s.id
}

// Describe returns the human label.
func (s *GlobStep) Describe() string {
	return fmt.Sprintf("Remove packages matching %s", s.glob)
}

// matches lists installed packages matching the glob, minus exclusions.
func (s *GlobStep) matches(ctx step.RunContext) ([]string, error) {
	result, err := s.runner.Run(ctx.Context(), "rpm", "-qa", "--qf", "%{NAME}\n", s.glob)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || s.exclude[name] {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Check reports satisfied when nothing matches the glob.
func (s *GlobStep) Check(ctx step.RunContext) (step.Status, error) {
	names, err := s.matches(ctx)
	if err != nil {
		return step.StatusUnknown, err
	}
	if len(names) == 0 {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *GlobStep) Plan(ctx step.RunContext) (step.Diff, error) {
	names, err := s.matches(ctx)
	if err != nil {
		return step.Diff{}, err
	}
	return step.NewDiff("package", s.glob, strings.Join(names, ", ")), nil
}

// Apply removes all matching packages in one transaction.
func (s *GlobStep) Apply(ctx step.RunContext) error {
	names, err := s.matches(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	args := append([]string{"-y", "remove"}, names...)
	result, err := s.runner.Run(ctx.Context(), s.pm, args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s remove %s failed: %s", s.pm, strings.Join(names, " "), strings.TrimSpace(result.Stderr))
	}
	return nil
}
