package util

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/samply/gendersim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_WriteRead(t *testing.T) {
	config := sim.Config{Families: 50, Cap: sim.Limit(0), Policy: sim.FirstBoy(), Runs: 3, Seed: 1}
	results, err := sim.RunExperiment(context.Background(), config)
	require.NoError(t, err)

	report, err := NewReport(config, results)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)
	require.NotNil(t, report.Summary)
	assert.Equal(t, 3, report.Summary.InfiniteGenderRatios)
	require.NotNil(t, report.ConfidenceInterval)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))
	assert.Contains(t, buf.String(), `"genderRatio": "inf"`)
	assert.Contains(t, buf.String(), `"cap": "0"`)

	decoded, err := ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, report.ID, decoded.ID)
	assert.Equal(t, config, decoded.Config)
	assert.Equal(t, results, decoded.Results)
}

func TestNewReport_singleRun(t *testing.T) {
	report, err := NewReport(sim.Config{Runs: 1}, runResults(0.5))
	require.NoError(t, err)

	assert.NotNil(t, report.Summary)
	assert.Nil(t, report.ConfidenceInterval)
}

func TestNewReport_noResults(t *testing.T) {
	report, err := NewReport(sim.Config{}, nil)
	require.NoError(t, err)

	assert.Nil(t, report.Summary)
}

func TestReadReport_invalid(t *testing.T) {
	_, err := ReadReport(strings.NewReader("{"))
	assert.ErrorContains(t, err, "could not read the report")
}
