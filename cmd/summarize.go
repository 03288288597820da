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
	"io"
	"os"

	"github.com/samply/gendersim/util"
	"github.com/spf13/cobra"
)

func summarizeReport(r io.Reader, w io.Writer) error {
	report, err := util.ReadReport(r)
	if err != nil {
		return err
	}

	return writeTextReport(w, report.Config, report.Results, 0)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [report-file]",
	Short: "Summarizes a JSON report",
	Long: `Reads a report written by "simulate --format json" from the given file
or from stdin and prints the summary statistics again, without simulating.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			in = file
		}

		return summarizeReport(in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().BoolVar(&showCharts, "charts", false, "show charts of the boy ratio, the family sizes and the gender ratio")
	summarizeCmd.Flags().BoolVar(&hideTable, "no-table", false, "don't print the result of every run")
}
