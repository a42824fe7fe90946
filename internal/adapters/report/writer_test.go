package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/orbitpanel/orbitsweep/internal/domain/execution"
	"github.com/orbitpanel/orbitsweep/internal/domain/step"
)

func sampleReport() *execution.Report {
	rep := execution.NewReport()
	rep.Append(execution.NewStepResult(
		step.MustNewStepID("rpm:remove:exim"), "Remove package exim",
		step.StatusSatisfied, nil,
	).WithApplied())
	rep.Append(execution.NewStepResult(
		step.MustNewStepID("rpm:remove:orbit-nginx"), "Remove package orbit-nginx",
		step.StatusFailed, errors.New("scriptlet failed"),
	).WithRemediation("restore nginx config before retrying"))
	rep.Finish()
	return rep
}

func TestYAMLWriter_WriteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	writer := NewYAMLWriter()

	require.NoError(t, writer.Write(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var dto reportDTO
	require.NoError(t, yaml.Unmarshal(data, &dto))

	assert.NotEmpty(t, dto.RunID)
	assert.False(t, dto.FinishedAt.IsZero())
	assert.Equal(t, 2, dto.Summary.Total)
	assert.Equal(t, 1, dto.Summary.Removed)
	assert.Equal(t, 1, dto.Summary.Failed)

	require.Len(t, dto.Steps, 2)
	assert.Equal(t, "rpm:remove:exim", dto.Steps[0].ID)
	assert.True(t, dto.Steps[0].Applied)
	assert.Empty(t, dto.Steps[0].Error)
	assert.Equal(t, "failed", dto.Steps[1].Status)
	assert.Equal(t, "scriptlet failed", dto.Steps[1].Error)
	assert.Contains(t, dto.Steps[1].Remediation, "restore nginx")
}

func TestYAMLWriter_NoStrayTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, NewYAMLWriter().Write(path, sampleReport()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run.yaml", entries[0].Name())
}
