// Copyright 2019 - 2026 The Samply Community
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
	"strings"
	"time"

	"github.com/samply/gendersim/sim"
)

// ExperimentStats is the summary block printed after an experiment.
type ExperimentStats struct {
	Config        sim.Config
	Summary       Summary
	TotalDuration time.Duration
}

func (es *ExperimentStats) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Policy		[name]			%s\n", es.Config.Policy))
	builder.WriteString(fmt.Sprintf("Cap		[children/family]	%s\n", es.Config.Cap))
	builder.WriteString(fmt.Sprintf("Families	[per run]		%d\n", es.Config.Families))
	builder.WriteString(fmt.Sprintf("Runs		[total, seed]		%d, %d\n", es.Summary.Runs, es.Config.Seed))

	if es.TotalDuration > 0 {
		builder.WriteString(fmt.Sprintf("Duration	[total]			%s\n", FmtDurationHumanReadable(es.TotalDuration)))
	}

	s := es.Summary
	builder.WriteString(fmt.Sprintf("Boy Ratio	[mean ± std]		%.6f ± %.6f\n", s.MeanBoyRatio, s.StdBoyRatio))
	builder.WriteString(fmt.Sprintf("Boy Ratio	[min, max]		%.6f, %.6f\n", s.MinBoyRatio, s.MaxBoyRatio))

	if ci, err := s.ConfidenceInterval(DefaultConfidenceLevel); err == nil {
		builder.WriteString(fmt.Sprintf("Boy Ratio	[%.0f%% CI]		%s\n", ci.Level*100, ci))
	} else {
		builder.WriteString(fmt.Sprintf("Boy Ratio	[%.0f%% CI]		n/a (%v)\n", DefaultConfidenceLevel*100, err))
	}

	builder.WriteString(fmt.Sprintf("Gender Ratio	[mean ± std]		%s ± %s\n", s.MeanGenderRatio, s.StdGenderRatio))
	if s.InfiniteGenderRatios > 0 {
		builder.WriteString(Indent(2, fmt.Sprintf("excluded %d run(s) without girls", s.InfiniteGenderRatios)) + "\n")
	}
	builder.WriteString(fmt.Sprintf("Family Size	[mean ± std]		%.2f ± %.2f\n", s.MeanFamilySize, s.StdFamilySize))

	return builder.String()
}

func Indent(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return pad + IndentExceptFirstLine(spaces, v)
}

func IndentExceptFirstLine(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return strings.ReplaceAll(v, "\n", "\n"+pad)
}
