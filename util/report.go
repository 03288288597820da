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
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/samply/gendersim/sim"
)

// Report is the machine readable outcome of an experiment. Summary and
// ConfidenceInterval are derived from Results and only included for
// convenience.
type Report struct {
	ID                 uuid.UUID       `json:"id"`
	Config             sim.Config      `json:"config"`
	Results            []sim.RunResult `json:"results"`
	Summary            *Summary        `json:"summary,omitempty"`
	ConfidenceInterval *Interval       `json:"confidenceInterval,omitempty"`
}

// NewReport creates a report with a random ID.
func NewReport(config sim.Config, results []sim.RunResult) (*Report, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	report := &Report{ID: id, Config: config, Results: results}
	if summary, err := Summarize(results); err == nil {
		report.Summary = &summary
		if ci, err := summary.ConfidenceInterval(DefaultConfidenceLevel); err == nil {
			report.ConfidenceInterval = &ci
		}
	}
	return report, nil
}

func WriteReport(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// ReadReport reads a report written by WriteReport. The derived fields are
// ignored; use Summarize on the results instead.
func ReadReport(r io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("could not read the report: %w", err)
	}
	return &report, nil
}
