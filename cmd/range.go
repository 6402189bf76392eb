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

	"github.com/notargets/gofea/utils"
)

// RangeCmd represents the range command
var RangeCmd = &cobra.Command{
	Use:   "range START:STOP[:STEP]",
	Short: "Print the index sequence of a half open range",
	Long:  `Print the index sequence of a half open range, STOP alone counts from zero`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var r utils.Index
		if r, err = utils.ParseRange(args[0]); err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", []int(r))
		return
	},
}

func init() {
	rootCmd.AddCommand(RangeCmd)
}
