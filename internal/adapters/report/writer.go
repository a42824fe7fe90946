// Package report persists run reports as YAML.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/orbitpanel/orbitsweep/internal/domain/execution"
)

// reportDTO is the on-disk shape of a run report.
type reportDTO struct {
	RunID      string     `yaml:"run_id"`
	StartedAt  time.Time  `yaml:"started_at"`
	FinishedAt time.Time  `yaml:"finished_at"`
	Summary    summaryDTO `yaml:"summary"`
	Steps      []stepDTO  `yaml:"steps"`
}

type summaryDTO struct {
	Total   int `yaml:"total"`
	Removed int `yaml:"removed"`
	Absent  int `yaml:"absent"`
	Failed  int `yaml:"failed"`
	Skipped int `yaml:"skipped"`
}

type stepDTO struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Status      string `yaml:"status"`
	Applied     bool   `yaml:"applied"`
	DurationMS  int64  `yaml:"duration_ms,omitempty"`
	Error       string `yaml:"error,omitempty"`
	Remediation string `yaml:"remediation,omitempty"`
}

// YAMLWriter persists reports to YAML files.
type YAMLWriter struct{}

// NewYAMLWriter creates a new YAMLWriter.
func NewYAMLWriter() *YAMLWriter {
	return &YAMLWriter{}
}

// Write serializes the report to path. The write is atomic: a temp file
// is renamed into place.
func (w *YAMLWriter) Write(path string, rep *execution.Report) error {
	dto := toDTO(rep)

	data, err := yaml.Marshal(&dto)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func toDTO(rep *execution.Report) reportDTO {
	summary := rep.Summary()
	dto := reportDTO{
		RunID:      rep.RunID(),
		StartedAt:  rep.StartedAt(),
		FinishedAt: rep.FinishedAt(),
		Summary: summaryDTO{
			Total:   summary.Total,
			Removed: summary.Removed,
			Absent:  summary.Absent,
			Failed:  summary.Failed,
			Skipped: summary.Skipped,
		},
	}

	for _, result := range rep.Results() {
		step := stepDTO{
			ID:          result.StepID().String(),
			Label:       result.Label(),
			Status:      string(result.Status()),
			Applied:     result.Applied(),
			DurationMS:  result.Duration().Milliseconds(),
			Remediation: result.Remediation(),
		}
		if result.Error() != nil {
			step.Error = result.Error().Error()
		}
		dto.Steps = append(dto.Steps, step)
	}

	return dto
}
