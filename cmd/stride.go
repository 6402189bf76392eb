/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notargets/gofea/fea"
	"github.com/notargets/gofea/utils"
)

// StrideCmd represents the stride command
var StrideCmd = &cobra.Command{
	Use:   "stride",
	Short: "Show the column stride and walked columns for a component layout",
	Long:  `Show the column stride and walked columns for a component layout`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			nCoeff, cols int
		)
		nCoeff, _ = cmd.Flags().GetInt("nCoeff")
		cols, _ = cmd.Flags().GetInt("cols")
		if nCoeff < 1 || cols < 1 {
			return fmt.Errorf("nCoeff and cols must be positive, have %d, %d", nCoeff, cols)
		}
		step, known := fea.StrideFor(nCoeff, cols)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "[%d]\t\t= Stride\n", step)
		if !known {
			fmt.Fprintf(w, "layout not recognized, every column is walked\n")
		}
		fmt.Fprintf(w, "%v\t= Columns\n", []int(utils.Range(0, cols, step)))
		return
	},
}

func init() {
	rootCmd.AddCommand(StrideCmd)
	StrideCmd.Flags().IntP("nCoeff", "n", 1, "number of field coefficients per degree of freedom")
	StrideCmd.Flags().IntP("cols", "c", 1, "number of element matrix columns")
}
