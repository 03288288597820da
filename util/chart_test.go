package util

import (
	"strings"
	"testing"

	"github.com/samply/gendersim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoyRatioHistogram(t *testing.T) {
	output := BoyRatioHistogram(runResults(0.40, 0.46, 0.52, 0.53, 0.60), 4)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[1], " 1"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], " 1"), lines[2])
	assert.True(t, strings.HasSuffix(lines[3], " 2"), lines[3])
	assert.True(t, strings.HasSuffix(lines[4], " 1"), lines[4])
}

func TestBoyRatioHistogram_equalRatios(t *testing.T) {
	output := BoyRatioHistogram(runResults(0.5, 0.5), 2)

	assert.Contains(t, output, " 2\n")
}

func TestHistogramDividers(t *testing.T) {
	dividers := histogramDividers(0.4, 0.6, 4)

	require.Len(t, dividers, 5)
	assert.Equal(t, 0.4, dividers[0])
	assert.Greater(t, dividers[4], 0.6)
}

func TestFamilySizeDistribution(t *testing.T) {
	results := []sim.RunResult{
		{Run: 1, SizeCounts: map[int]int{1: 5, 2: 3, 12: 1}},
		{Run: 2, FamilySizes: []int{1, 1, 2}},
	}

	output := FamilySizeDistribution(results, 2)

	assert.Contains(t, output, "   1  "+strings.Repeat("#", chartWidth)+" 7\n")
	assert.Contains(t, output, " 4\n")
	assert.NotContains(t, output, "  12  ")
}

func TestMergeSizeCounts(t *testing.T) {
	results := []sim.RunResult{
		{SizeCounts: map[int]int{1: 5, 2: 3}},
		{SizeCounts: map[int]int{2: 1, 3: 1}},
	}

	assert.Equal(t, map[int]int{1: 5, 2: 4, 3: 1}, MergeSizeCounts(results))
}

func TestBoyRatioTrend(t *testing.T) {
	results := runResults(0.4, 0.6)
	summary, err := Summarize(results)
	require.NoError(t, err)

	output := BoyRatioTrend(results, summary)

	assert.Contains(t, output, "   1  0.4000")
	assert.Contains(t, output, "   2  0.6000")
	assert.Contains(t, output, "*")
	assert.Contains(t, output, "|")
	assert.Contains(t, output, "mean 0.5000")
}

func TestGenderRatioSeries(t *testing.T) {
	results := runResults(0.5, 1)
	summary, err := Summarize(results)
	require.NoError(t, err)

	output := GenderRatioSeries(results, summary)

	assert.Contains(t, output, "1.0000")
	assert.Contains(t, output, "inf")
}

func TestPosition(t *testing.T) {
	assert.Equal(t, 0, position(0, 0, 1))
	assert.Equal(t, chartWidth-1, position(1, 0, 1))
	assert.Equal(t, chartWidth/2, position(3, 3, 3))
	assert.Equal(t, chartWidth-1, position(2, 0, 1))
}

func TestCharts(t *testing.T) {
	results := runResults(0.45, 0.5, 0.55)
	summary, err := Summarize(results)
	require.NoError(t, err)

	output := Charts(results, summary)

	assert.Contains(t, output, "Boy Ratio per Run")
	assert.Contains(t, output, "Boy Ratio Distribution")
	assert.Contains(t, output, "Family Size Distribution")
	assert.Contains(t, output, "Gender Ratio per Run")
}
