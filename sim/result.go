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
	"fmt"
	"math"
	"strconv"
)

// GenderRatio is the number of boys per girl. A run without girls has an
// infinite gender ratio, see IsInf.
type GenderRatio float64

const infiniteText = "inf"

// InfiniteGenderRatio is the gender ratio of a run without girls.
func InfiniteGenderRatio() GenderRatio {
	return GenderRatio(math.Inf(1))
}

// NewGenderRatio returns boys / girls, or InfiniteGenderRatio if there are
// no girls.
func NewGenderRatio(boys, girls int) GenderRatio {
	if girls == 0 {
		return InfiniteGenderRatio()
	}
	return GenderRatio(float64(boys) / float64(girls))
}

func (r GenderRatio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

func (r GenderRatio) Float64() float64 {
	return float64(r)
}

func (r GenderRatio) String() string {
	if r.IsInf() {
		return infiniteText
	}
	return strconv.FormatFloat(float64(r), 'f', 4, 64)
}

// MarshalJSON encodes the infinite ratio as the string "inf" because JSON
// has no representation for infinity.
func (r GenderRatio) MarshalJSON() ([]byte, error) {
	if r.IsInf() {
		return []byte(`"` + infiniteText + `"`), nil
	}
	if math.IsNaN(float64(r)) || math.IsInf(float64(r), -1) {
		return nil, fmt.Errorf("unsupported gender ratio %v", float64(r))
	}
	return strconv.AppendFloat(nil, float64(r), 'g', -1, 64), nil
}

func (r *GenderRatio) UnmarshalJSON(data []byte) error {
	if string(data) == `"`+infiniteText+`"` {
		*r = InfiniteGenderRatio()
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid gender ratio %s: %w", data, err)
	}
	*r = GenderRatio(f)
	return nil
}

// RunResult summarizes one simulation run. Results are values and are never
// changed after the run that produced them finished.
type RunResult struct {
	Run           int         `json:"run"`
	Families      int         `json:"families"`
	Boys          int         `json:"boys"`
	Girls         int         `json:"girls"`
	Children      int         `json:"children"`
	BoyRatio      float64     `json:"boyRatio"`
	GirlRatio     float64     `json:"girlRatio"`
	GenderRatio   GenderRatio `json:"genderRatio"`
	AvgFamilySize float64     `json:"avgFamilySize"`
	StdFamilySize float64     `json:"stdFamilySize"`

	// SizeCounts maps a family size to the number of families of that size.
	SizeCounts map[int]int `json:"sizeCounts"`

	// FamilySizes holds the size of every family in simulation order. It is
	// only filled if the experiment was configured to keep family sizes.
	FamilySizes []int `json:"familySizes,omitempty"`

	Policy Policy `json:"policy"`
	Cap    Cap    `json:"cap"`
}
