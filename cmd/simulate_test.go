package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samply/gendersim/sim"
	"github.com/samply/gendersim/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCmd_FixedCount(t *testing.T) {
	out, err := execute(t, "simulate", "--no-progress", "--format", "json",
		"--policy", "fixed-count", "--fixed-count", "3", "--cap", "3",
		"--families", "1000", "--runs", "1", "--keep-family-sizes")
	require.NoError(t, err)

	report, err := util.ReadReport(strings.NewReader(out))
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	result := report.Results[0]
	assert.Equal(t, 1, result.Run)
	assert.Equal(t, 3.0, result.AvgFamilySize)
	require.Len(t, result.FamilySizes, 1000)
	for _, size := range result.FamilySizes {
		assert.Equal(t, 3, size)
	}
	assert.Equal(t, sim.Fixed(3), report.Config.Policy)
	assert.Nil(t, report.ConfidenceInterval)
}

func TestSimulateCmd_Text(t *testing.T) {
	out, err := execute(t, "simulate", "--no-progress", "--families", "200", "--runs", "3", "--charts")
	require.NoError(t, err)

	assert.Contains(t, out, "Gender Ratio")
	assert.Contains(t, out, "Boy Ratio	[mean ± std]")
	assert.Contains(t, out, "[95% CI]")
	assert.Contains(t, out, "stop-at-boy")
	assert.Contains(t, out, "Boy Ratio Distribution")
	assert.Contains(t, out, "Family Size Distribution")
}

func TestSimulateCmd_NoTable(t *testing.T) {
	out, err := execute(t, "simulate", "--no-progress", "--families", "10", "--runs", "2", "--no-table")
	require.NoError(t, err)

	assert.NotContains(t, out, "Avg. Family Size")
	assert.Contains(t, out, "Family Size	[mean ± std]")
}

func TestSimulateCmd_Deterministic(t *testing.T) {
	args := []string{"simulate", "--no-progress", "--format", "json", "--families", "300", "--runs", "3", "--seed", "11"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, append(args, "--workers", "3")...)
	require.NoError(t, err)

	firstReport, err := util.ReadReport(strings.NewReader(first))
	require.NoError(t, err)
	secondReport, err := util.ReadReport(strings.NewReader(second))
	require.NoError(t, err)

	assert.Equal(t, firstReport.Results, secondReport.Results)
	assert.NotEqual(t, firstReport.ID, secondReport.ID)
}

func TestSimulateCmd_ConfigError(t *testing.T) {
	out, err := execute(t, "simulate", "--no-progress",
		"--policy", "fixed-count", "--fixed-count", "4", "--cap", "3")

	var configErr *sim.ConfigError
	assert.True(t, errors.As(err, &configErr))
	assert.ErrorIs(t, err, sim.ErrFixedCountExceedsCap)
	assert.Empty(t, out)
}

func TestSimulateCmd_UnknownPolicy(t *testing.T) {
	_, err := execute(t, "simulate", "--no-progress", "--policy", "stop-at-girl")
	assert.ErrorIs(t, err, sim.ErrUnknownPolicy)
}

func TestSimulateCmd_InvalidFormat(t *testing.T) {
	_, err := execute(t, "simulate", "--no-progress", "--format", "xml")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestSimulateCmd_OutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")
	args := []string{"simulate", "--no-progress", "--format", "json", "--families", "10", "--runs", "2", "-o", output}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Empty(t, out)

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()
	report, err := util.ReadReport(file)
	require.NoError(t, err)
	assert.Len(t, report.Results, 2)

	_, err = execute(t, args...)
	assert.ErrorIs(t, err, util.ErrOutputFileExists)
}

func TestSimulateCmd_ConfigFile(t *testing.T) {
	config := writeFile(t, "experiment.yml", `
families: 50
cap: 2
policy: stop_at_two_boys
runs: 2
`)

	out, err := execute(t, "simulate", "--no-progress", "--format", "json", "--config", config)
	require.NoError(t, err)

	report, err := util.ReadReport(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, sim.NBoys(2), report.Config.Policy)
	assert.Equal(t, sim.Limit(2), report.Config.Cap)
	for _, result := range report.Results {
		assert.LessOrEqual(t, result.AvgFamilySize, 2.0)
	}
}
