package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/samply/gendersim/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidenceLevel is the level of the confidence interval reported for
// the mean boy ratio.
const DefaultConfidenceLevel = 0.95

var (
	ErrNoResults    = errors.New("no simulation results to summarize")
	ErrSingleRun    = errors.New("a confidence interval needs at least two runs")
	ErrInvalidLevel = errors.New("confidence level must be greater than 0 and less than 1")
)

// Summary represents statistics over the results of all runs of an
// experiment. Standard deviations are population standard deviations over
// the runs.
//
// Runs without girls have an infinite gender ratio. They are left out of the
// gender ratio mean and standard deviation and counted in
// InfiniteGenderRatios instead. If no run has a finite gender ratio, mean and
// standard deviation are infinite.
type Summary struct {
	Runs int `json:"runs"`

	MeanBoyRatio      float64 `json:"meanBoyRatio"`
	StdBoyRatio       float64 `json:"stdBoyRatio"`
	SampleStdBoyRatio float64 `json:"sampleStdBoyRatio"`
	MinBoyRatio       float64 `json:"minBoyRatio"`
	MaxBoyRatio       float64 `json:"maxBoyRatio"`

	MeanGenderRatio      sim.GenderRatio `json:"meanGenderRatio"`
	StdGenderRatio       sim.GenderRatio `json:"stdGenderRatio"`
	InfiniteGenderRatios int             `json:"infiniteGenderRatios,omitempty"`

	MeanFamilySize float64 `json:"meanFamilySize"`
	StdFamilySize  float64 `json:"stdFamilySize"`
}

// Interval is a two-sided confidence interval.
type Interval struct {
	Level float64 `json:"level"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

func (i Interval) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", i.Low, i.High)
}

// Summarize calculates the Summary of the given results. It returns
// ErrNoResults if there are none.
func Summarize(results []sim.RunResult) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, ErrNoResults
	}

	boyRatios := make([]float64, 0, len(results))
	genderRatios := make([]float64, 0, len(results))
	familySizes := make([]float64, 0, len(results))
	var infinite int
	for _, r := range results {
		boyRatios = append(boyRatios, r.BoyRatio)
		familySizes = append(familySizes, r.AvgFamilySize)
		if r.GenderRatio.IsInf() {
			infinite++
		} else {
			genderRatios = append(genderRatios, r.GenderRatio.Float64())
		}
	}

	summary := Summary{
		Runs:                 len(results),
		MinBoyRatio:          floats.Min(boyRatios),
		MaxBoyRatio:          floats.Max(boyRatios),
		InfiniteGenderRatios: infinite,
	}
	summary.MeanBoyRatio, summary.StdBoyRatio = stat.PopMeanStdDev(boyRatios, nil)
	if len(boyRatios) > 1 {
		summary.SampleStdBoyRatio = stat.StdDev(boyRatios, nil)
	}
	summary.MeanFamilySize, summary.StdFamilySize = stat.PopMeanStdDev(familySizes, nil)

	if len(genderRatios) > 0 {
		mean, std := stat.PopMeanStdDev(genderRatios, nil)
		summary.MeanGenderRatio, summary.StdGenderRatio = sim.GenderRatio(mean), sim.GenderRatio(std)
	} else {
		summary.MeanGenderRatio, summary.StdGenderRatio = sim.InfiniteGenderRatio(), sim.InfiniteGenderRatio()
	}

	return summary, nil
}

// ConfidenceInterval returns the two-sided Student-t confidence interval of
// the mean boy ratio at the given level, using Runs-1 degrees of freedom and
// the standard error of the mean across runs.
func (s Summary) ConfidenceInterval(level float64) (Interval, error) {
	if !(level > 0 && level < 1) {
		return Interval{}, fmt.Errorf("%w, got %v", ErrInvalidLevel, level)
	}
	if s.Runs < 2 {
		return Interval{}, fmt.Errorf("%w, got %d", ErrSingleRun, s.Runs)
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(s.Runs - 1)}.Quantile(1 - (1-level)/2)
	margin := t * stat.StdErr(s.SampleStdBoyRatio, float64(s.Runs))
	return Interval{Level: level, Low: s.MeanBoyRatio - margin, High: s.MeanBoyRatio + margin}, nil
}

// FmtDurationHumanReadable takes a duration and returns it in a human readable form.
// This is basically equivalent to time.Duration.Round(time.Second) with the following differences:
//   - durations under a minute get printed with millisecond precision
//   - durations equal or above a minute get printed with second precision
func FmtDurationHumanReadable(d time.Duration) string {
	if d.Milliseconds() < 60000 {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
