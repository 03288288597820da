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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/samply/gendersim/data"
	"github.com/samply/gendersim/sim"
	"github.com/spf13/cobra"
)

// ExitConfigError is the exit code used if the experiment parameters are
// invalid.
const ExitConfigError = 2

var configFile string
var logLevel string
var noProgress bool

var logger = slog.New(slog.DiscardHandler)

// experiment flags shared by simulate and compare
var flagExperiment data.Experiment
var flagFixedCount int

func createLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %v", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gendersim",
	Short: "Simulate the gender ratio under childbearing stopping rules",
	Long: `gendersim simulates families that bear children until a stopping rule
tells them to stop, for example "stop at the first boy". Every birth is a boy
with probability 0.5.

An experiment repeats the simulation of a population of families several
times and reports the boy ratio, the gender ratio and the family size of each
run together with summary statistics over all runs.`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return createLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns ExitConfigError for invalid experiment parameters, no
// matter whether they come from the experiment file, the environment or the
// flags, and 1 for all other errors.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var configErr *sim.ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}
	return 1
}

// addExperimentFlags binds the experiment parameters to the flags of cmd.
func addExperimentFlags(cmd *cobra.Command) {
	defaults := data.DefaultExperiment()
	flags := cmd.Flags()
	flags.IntVarP(&flagExperiment.Families, "families", "n", defaults.Families, "number of families per run")
	flags.StringVar(&flagExperiment.Cap, "cap", defaults.Cap, "maximum number of children per family or \"unlimited\"")
	flags.StringVarP(&flagExperiment.Policy, "policy", "p", defaults.Policy, "stopping policy: stop-at-boy, stop-at-n-boys or fixed-count")
	flags.IntVar(&flagExperiment.TargetBoys, "target-boys", defaults.TargetBoys, "number of boys a stop-at-n-boys family waits for")
	flags.IntVar(&flagFixedCount, "fixed-count", 0, "number of children of a fixed-count family")
	flags.IntVarP(&flagExperiment.Runs, "runs", "r", defaults.Runs, "number of runs")
	flags.Int64Var(&flagExperiment.Seed, "seed", defaults.Seed, "seed of the random births")
	flags.IntVarP(&flagExperiment.Workers, "workers", "w", defaults.Workers, "number of runs simulated in parallel")
	flags.BoolVar(&flagExperiment.KeepFamilySizes, "keep-family-sizes", false, "keep the size of every family in the results")
}

// loadExperiment merges the default experiment, the experiment file, the
// environment and the flags explicitly set on cmd, in that order.
func loadExperiment(cmd *cobra.Command) (data.Experiment, error) {
	e := data.DefaultExperiment()
	if configFile != "" {
		if err := data.ReadExperimentFile(configFile, &e); err != nil {
			return e, err
		}
	}
	if err := e.ApplyEnv(nil); err != nil {
		return e, err
	}

	flags := cmd.Flags()
	if flags.Changed("families") {
		e.Families = flagExperiment.Families
	}
	if flags.Changed("cap") {
		e.Cap = flagExperiment.Cap
	}
	if flags.Changed("policy") {
		e.Policy = flagExperiment.Policy
	}
	if flags.Changed("target-boys") {
		e.TargetBoys = flagExperiment.TargetBoys
	}
	if flags.Changed("fixed-count") {
		fixedCount := flagFixedCount
		e.FixedCount = &fixedCount
	}
	if flags.Changed("runs") {
		e.Runs = flagExperiment.Runs
	}
	if flags.Changed("seed") {
		e.Seed = flagExperiment.Seed
	}
	if flags.Changed("workers") {
		e.Workers = flagExperiment.Workers
	}
	if flags.Changed("keep-family-sizes") {
		e.KeepFamilySizes = flagExperiment.KeepFamilySizes
	}

	logger.Debug("loaded experiment", "policy", e.Policy, "cap", e.Cap, "families", e.Families,
		"runs", e.Runs, "seed", e.Seed, "config", configFile)
	return e, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML experiment file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&noProgress, "no-progress", "", false, "don't show progress bar")
}
