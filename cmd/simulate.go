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

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samply/gendersim/sim"
	"github.com/samply/gendersim/util"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var outputFormat string
var outputFile string
var showCharts bool
var hideTable bool

func newProgress() *mpb.Progress {
	return mpb.New(mpb.WithOutput(os.Stderr))
}

func addRunsBar(progress *mpb.Progress, name string, runs int) *mpb.Bar {
	return progress.AddBar(int64(runs),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WC{W: 12}),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 4}), "done"),
			decor.Percentage(decor.WC{W: 5}),
		),
	)
}

// runExperiment runs the experiment described by config and shows a
// progress bar named name unless progress is nil.
func runExperiment(cmd *cobra.Command, config sim.Config, progress *mpb.Progress, name string) ([]sim.RunResult, error) {
	var bar *mpb.Bar
	engine, err := sim.New(config,
		sim.WithLogger(logger),
		sim.WithObserver(func(sim.RunResult) {
			if bar != nil {
				bar.Increment()
			}
		}))
	if err != nil {
		return nil, err
	}

	if progress != nil {
		bar = addRunsBar(progress, name, config.Runs)
	}

	results, err := engine.Run(cmd.Context())
	if err != nil && bar != nil {
		bar.Abort(true)
	}
	return results, err
}

// openOutput returns stdout of cmd or the newly created output file.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := util.CreateOutputFile(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func writeTextReport(w io.Writer, config sim.Config, results []sim.RunResult, duration time.Duration) error {
	summary, err := util.Summarize(results)
	if err != nil {
		return err
	}

	if !hideTable {
		fmt.Fprintln(w, util.RunTable(results))
		fmt.Fprintln(w)
	}

	stats := util.ExperimentStats{Config: config, Summary: summary, TotalDuration: duration}
	fmt.Fprint(w, stats.String())

	if showCharts {
		fmt.Fprintln(w)
		fmt.Fprint(w, util.Charts(results, summary))
	}
	return nil
}

func writeReport(cmd *cobra.Command, config sim.Config, results []sim.RunResult, duration time.Duration) error {
	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		report, err := util.NewReport(config, results)
		if err != nil {
			closeOutput()
			return err
		}
		err = util.WriteReport(w, report)
	default:
		err = writeTextReport(w, config, results, duration)
	}

	if closeErr := closeOutput(); err == nil {
		err = closeErr
	}
	return err
}

func validateOutputFormat(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("invalid output format `%s`, expected text or json", outputFormat)
	}
	return nil
}

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an experiment",
	Long: `Simulates the configured number of families several times and prints
the result of every run together with summary statistics.

Parameters are taken from the defaults, an experiment file (--config),
GENDERSIM_* environment variables and the flags, the latter taking
precedence.

Example:

  gendersim simulate --policy fixed-count --fixed-count 3 --cap 3 --runs 10`,
	Args: cobra.NoArgs,
	PreRunE: validateOutputFormat,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		config, err := e.ToConfig()
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Starting %d runs of %d families (policy %s, cap %s) ...\n",
			config.Runs, config.Families, config.Policy, config.Cap)

		var progress *mpb.Progress
		if !noProgress {
			progress = newProgress()
		}

		start := time.Now()
		results, err := runExperiment(cmd, config, progress, "simulate")
		if progress != nil {
			progress.Wait()
		}
		if err != nil {
			return err
		}

		return writeReport(cmd, config, results, time.Since(start))
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	addExperimentFlags(simulateCmd)
	simulateCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")
	simulateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a new file instead of stdout")
	simulateCmd.Flags().BoolVar(&showCharts, "charts", false, "show charts of the boy ratio, the family sizes and the gender ratio")
	simulateCmd.Flags().BoolVar(&hideTable, "no-table", false, "don't print the result of every run")
}
