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

package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunOnce simulates the given number of families and aggregates their
// children into a RunResult. The run index of the result is left at zero;
// the Engine assigns it.
//
// The family size statistics are population statistics over all families.
// Per-family sizes are only retained if keepSizes is set, the size
// distribution is always kept.
func RunOnce(src BirthSource, policy Policy, c Cap, families int, keepSizes bool) RunResult {
	result := RunResult{
		Families:   families,
		SizeCounts: make(map[int]int),
		Policy:     policy,
		Cap:        c,
	}
	if keepSizes {
		result.FamilySizes = make([]int, 0, families)
	}

	for i := 0; i < families; i++ {
		family := SimulateFamily(src, policy, c)
		result.Boys += family.Boys
		result.Girls += family.Girls
		result.SizeCounts[family.Size()]++
		if keepSizes {
			result.FamilySizes = append(result.FamilySizes, family.Size())
		}
	}

	result.Children = result.Boys + result.Girls
	if result.Children > 0 {
		result.BoyRatio = float64(result.Boys) / float64(result.Children)
	}
	result.GirlRatio = 1 - result.BoyRatio
	result.GenderRatio = NewGenderRatio(result.Boys, result.Girls)
	result.AvgFamilySize, result.StdFamilySize = familySizeMeanStdDev(result.SizeCounts)

	return result
}

// familySizeMeanStdDev weights every distinct family size with the number of
// families of that size.
func familySizeMeanStdDev(sizeCounts map[int]int) (mean, std float64) {
	if len(sizeCounts) == 0 {
		return 0, 0
	}

	sizes := make([]int, 0, len(sizeCounts))
	for size := range sizeCounts {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	x := make([]float64, len(sizes))
	weights := make([]float64, len(sizes))
	for i, size := range sizes {
		x[i] = float64(size)
		weights[i] = float64(sizeCounts[size])
	}
	return stat.PopMeanStdDev(x, weights)
}
