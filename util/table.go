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
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samply/gendersim/sim"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// RunTable renders one row per run.
func RunTable(results []sim.RunResult) string {
	t := newTable("Run", "Boys", "Girls", "Children", "Boy Ratio", "Gender Ratio", "Avg. Family Size")
	for _, r := range results {
		t.Row(
			strconv.Itoa(r.Run),
			strconv.Itoa(r.Boys),
			strconv.Itoa(r.Girls),
			strconv.Itoa(r.Children),
			fmt.Sprintf("%.4f", r.BoyRatio),
			r.GenderRatio.String(),
			fmt.Sprintf("%.2f", r.AvgFamilySize),
		)
	}
	return t.String()
}

// PolicyComparison is the summary of one experiment in a comparison of
// policies.
type PolicyComparison struct {
	Policy  sim.Policy
	Summary Summary
}

// ComparisonTable renders one row per policy.
func ComparisonTable(comparisons []PolicyComparison) string {
	t := newTable("Policy", "Boy Ratio", "Std", "95% CI", "Gender Ratio", "Family Size")
	for _, c := range comparisons {
		ci := "n/a"
		if interval, err := c.Summary.ConfidenceInterval(DefaultConfidenceLevel); err == nil {
			ci = interval.String()
		}
		t.Row(
			c.Policy.String(),
			fmt.Sprintf("%.6f", c.Summary.MeanBoyRatio),
			fmt.Sprintf("%.6f", c.Summary.StdBoyRatio),
			ci,
			c.Summary.MeanGenderRatio.String(),
			fmt.Sprintf("%.2f", c.Summary.MeanFamilySize),
		)
	}
	return t.String()
}
