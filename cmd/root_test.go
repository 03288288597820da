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
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/samply/gendersim/sim"
	"github.com/samply/gendersim/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores the defaults of all flags, because the commands are
// package level variables shared by all tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(os.Stdin)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "simulate", "--no-progress", "--log-level", "loud", "--runs", "1", "--families", "1")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "0.1.0")
}

func TestLoadExperiment_Precedence(t *testing.T) {
	config := writeFile(t, "experiment.yml", "families: 20\nruns: 3\nseed: 1\ncap: 4\n")
	t.Setenv("GENDERSIM_RUNS", "2")
	t.Setenv("GENDERSIM_SEED", "5")

	resetFlags(rootCmd)
	configFile = config
	defer func() { configFile = "" }()
	require.NoError(t, simulateCmd.Flags().Parse([]string{"--seed", "9"}))

	e, err := loadExperiment(simulateCmd)
	require.NoError(t, err)

	assert.Equal(t, 20, e.Families)
	assert.Equal(t, "4", e.Cap)
	assert.Equal(t, 2, e.Runs)
	assert.Equal(t, int64(9), e.Seed)
	assert.Nil(t, e.FixedCount)
}

func TestLoadExperiment_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "simulate", "--no-progress", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 1, exitCode(util.ErrOutputFileExists))
}

func TestExitCode_ConfigErrors(t *testing.T) {
	t.Run("ExperimentFile", func(t *testing.T) {
		config := writeFile(t, "experiment.yml", "couples: 10\n")
		_, err := execute(t, "simulate", "--no-progress", "--config", config)
		assert.Equal(t, ExitConfigError, exitCode(err))
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("GENDERSIM_RUNS", "abc")
		_, err := execute(t, "simulate", "--no-progress")
		assert.Equal(t, ExitConfigError, exitCode(err))
	})

	t.Run("Flag", func(t *testing.T) {
		_, err := execute(t, "simulate", "--no-progress", "--families", "0")
		assert.ErrorIs(t, err, sim.ErrFamiliesNotPositive)
		assert.Equal(t, ExitConfigError, exitCode(err))
	})
}
