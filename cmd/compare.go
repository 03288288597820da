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

package cmd

import (
	"fmt"
	"os"

	"github.com/samply/gendersim/data"
	"github.com/samply/gendersim/sim"
	"github.com/samply/gendersim/util"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
)

// defaultComparedFixedCount is the expected family size under the
// stop-at-boy policy.
const defaultComparedFixedCount = 2

// comparedFixedCount returns the fixed count used when none is given: the
// default, lowered to a smaller finite cap. A cap of zero still fails
// validation because a fixed-count family needs at least one child.
func comparedFixedCount(capText string) int {
	fixedCount := defaultComparedFixedCount
	c, err := sim.ParseCap(capText)
	if err != nil {
		return fixedCount
	}
	if n, limited := c.Children(); limited && n >= 1 {
		fixedCount = c.Clamp(fixedCount)
	}
	return fixedCount
}

// comparedExperiments returns one experiment per policy kind, all other
// parameters taken from e. An explicit fixed count is kept as is, so it can
// still exceed the cap.
func comparedExperiments(e data.Experiment) []data.Experiment {
	experiments := make([]data.Experiment, 0, 3)
	for _, kind := range sim.KindNames() {
		compared := e
		compared.Policy = kind
		if kind == sim.FixedCount.String() && compared.FixedCount == nil {
			fixedCount := comparedFixedCount(e.Cap)
			compared.FixedCount = &fixedCount
		}
		experiments = append(experiments, compared)
	}
	return experiments
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all stopping policies",
	Long: `Runs the same experiment once for every stopping policy and prints
the summary statistics of each policy side by side.

The fixed-count policy uses --fixed-count children per family. If not
given, it uses 2 or the cap, whichever is smaller.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		experiments := comparedExperiments(e)
		configs := make([]sim.Config, 0, len(experiments))
		for _, experiment := range experiments {
			config, err := experiment.ToConfig()
			if err != nil {
				return err
			}
			configs = append(configs, config)
		}

		fmt.Fprintf(os.Stderr, "Comparing %d policies with %d runs of %d families ...\n",
			len(configs), e.Runs, e.Families)

		var progress *mpb.Progress
		if !noProgress {
			progress = newProgress()
		}

		comparisons := make([]util.PolicyComparison, 0, len(configs))
		for _, config := range configs {
			results, err := runExperiment(cmd, config, progress, config.Policy.String())
			if err != nil {
				if progress != nil {
					progress.Wait()
				}
				return err
			}

			summary, err := util.Summarize(results)
			if err != nil {
				return err
			}
			comparisons = append(comparisons, util.PolicyComparison{Policy: config.Policy, Summary: summary})
		}
		if progress != nil {
			progress.Wait()
		}

		fmt.Fprintln(cmd.OutOrStdout(), util.ComparisonTable(comparisons))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	addExperimentFlags(compareCmd)
}
