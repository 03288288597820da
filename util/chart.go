// Copyright 2026 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samply/gendersim/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	chartWidth = 50

	// HistogramBins is the number of bins of the boy ratio histogram.
	HistogramBins = 20

	// TopFamilySizes is the number of family sizes shown in the family size
	// distribution.
	TopFamilySizes = 10
)

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Charts renders all charts of an experiment: the boy ratio per run with its
// confidence band, the boy ratio histogram, the family size distribution and
// the gender ratio per run.
func Charts(results []sim.RunResult, summary Summary) string {
	return strings.Join([]string{
		BoyRatioTrend(results, summary),
		BoyRatioHistogram(results, HistogramBins),
		FamilySizeDistribution(results, TopFamilySizes),
		GenderRatioSeries(results, summary),
	}, "\n")
}

// BoyRatioTrend plots the boy ratio of every run. The theoretical value 0.5
// is marked with '|', the confidence interval of the mean with '-' and the
// run itself with '*'.
func BoyRatioTrend(results []sim.RunResult, summary Summary) string {
	builder := strings.Builder{}
	builder.WriteString(titleStyle.Render("Boy Ratio per Run"))
	builder.WriteString("\n")

	if len(results) == 0 {
		return builder.String()
	}

	ci, ciErr := summary.ConfidenceInterval(DefaultConfidenceLevel)
	values := []float64{0.5, summary.MinBoyRatio, summary.MaxBoyRatio}
	if ciErr == nil {
		values = append(values, ci.Low, ci.High)
	}
	lo, hi := floats.Min(values), floats.Max(values)

	for _, r := range results {
		line := blankLine()
		if ciErr == nil {
			for i := position(ci.Low, lo, hi); i <= position(ci.High, lo, hi); i++ {
				line[i] = '-'
			}
		}
		line[position(0.5, lo, hi)] = '|'
		line[position(r.BoyRatio, lo, hi)] = '*'
		builder.WriteString(fmt.Sprintf("%4d  %.4f  %s\n", r.Run, r.BoyRatio, string(line)))
	}
	builder.WriteString(fmt.Sprintf("      scale %.4f .. %.4f, mean %.4f\n", lo, hi, summary.MeanBoyRatio))
	return builder.String()
}

// BoyRatioHistogram counts the boy ratios of all runs in equally wide bins
// between the smallest and the largest ratio.
func BoyRatioHistogram(results []sim.RunResult, bins int) string {
	builder := strings.Builder{}
	builder.WriteString(titleStyle.Render("Boy Ratio Distribution"))
	builder.WriteString("\n")

	if len(results) == 0 || bins < 1 {
		return builder.String()
	}

	ratios := make([]float64, len(results))
	for i, r := range results {
		ratios[i] = r.BoyRatio
	}
	sort.Float64s(ratios)

	dividers := histogramDividers(ratios[0], ratios[len(ratios)-1], bins)
	counts := stat.Histogram(nil, dividers, ratios, nil)
	maxCount := floats.Max(counts)

	for i, count := range counts {
		builder.WriteString(fmt.Sprintf("[%.4f, %.4f)  %s %d\n",
			dividers[i], dividers[i+1], bar(count, maxCount), int(count)))
	}
	return builder.String()
}

// histogramDividers returns bins+1 dividers so that all values in [min, max]
// fall into a bin.
func histogramDividers(lo, hi float64, bins int) []float64 {
	if lo == hi {
		lo, hi = lo-0.0005, hi+0.0005
	}
	return floats.Span(make([]float64, bins+1), lo, math.Nextafter(hi, math.Inf(1)))
}

// FamilySizeDistribution counts families by size over all runs and shows the
// smallest top sizes.
func FamilySizeDistribution(results []sim.RunResult, top int) string {
	builder := strings.Builder{}
	builder.WriteString(titleStyle.Render(fmt.Sprintf("Family Size Distribution (first %d)", top)))
	builder.WriteString("\n")

	counts := MergeSizeCounts(results)
	sizes := make([]int, 0, len(counts))
	for size := range counts {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	if len(sizes) > top {
		sizes = sizes[:top]
	}

	var maxCount float64
	for _, size := range sizes {
		maxCount = math.Max(maxCount, float64(counts[size]))
	}
	for _, size := range sizes {
		builder.WriteString(fmt.Sprintf("%4d  %s %d\n", size, bar(float64(counts[size]), maxCount), counts[size]))
	}
	return builder.String()
}

// MergeSizeCounts adds up the family size distributions of all runs. Runs
// that kept the size of every family but no distribution are counted from
// their family sizes.
func MergeSizeCounts(results []sim.RunResult) map[int]int {
	counts := make(map[int]int)
	for _, r := range results {
		if len(r.SizeCounts) == 0 {
			for _, size := range r.FamilySizes {
				counts[size]++
			}
			continue
		}
		for size, count := range r.SizeCounts {
			counts[size] += count
		}
	}
	return counts
}

// GenderRatioSeries plots the gender ratio of every run. The balanced ratio
// 1.0 is marked with '|'. Runs without girls are listed as inf.
func GenderRatioSeries(results []sim.RunResult, summary Summary) string {
	builder := strings.Builder{}
	builder.WriteString(titleStyle.Render("Gender Ratio per Run (boys/girls)"))
	builder.WriteString("\n")

	values := []float64{1}
	for _, r := range results {
		if !r.GenderRatio.IsInf() {
			values = append(values, r.GenderRatio.Float64())
		}
	}
	lo, hi := floats.Min(values), floats.Max(values)

	for _, r := range results {
		line := blankLine()
		line[position(1, lo, hi)] = '|'
		if !r.GenderRatio.IsInf() {
			line[position(r.GenderRatio.Float64(), lo, hi)] = '*'
		}
		builder.WriteString(fmt.Sprintf("%4d  %6s  %s\n", r.Run, r.GenderRatio, string(line)))
	}
	builder.WriteString(fmt.Sprintf("      scale %.4f .. %.4f, mean %s\n", lo, hi, summary.MeanGenderRatio))
	return builder.String()
}

func blankLine() []rune {
	return []rune(strings.Repeat(" ", chartWidth))
}

// position maps v in [lo, hi] to a column of the chart.
func position(v, lo, hi float64) int {
	if hi <= lo {
		return chartWidth / 2
	}
	p := int(math.Round((v - lo) / (hi - lo) * (chartWidth - 1)))
	return max(0, min(chartWidth-1, p))
}

func bar(count, maxCount float64) string {
	if maxCount <= 0 {
		return ""
	}
	return strings.Repeat("#", int(math.Round(count/maxCount*chartWidth)))
}
