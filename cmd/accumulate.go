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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gofea/InputParameters"
	"github.com/notargets/gofea/fea"
	"github.com/notargets/gofea/stopwatch"
	"github.com/notargets/gofea/utils"
)

type Accumulation struct {
	ICFile     string
	OutFile    string
	ProfileDir string
	Cycles     bool
	Watches    *stopwatch.Registry // Optional, a fresh registry is used when nil
}

// Result is the YAML document written by accumulate -o
type Result struct {
	Title   string               `json:"Title"`
	Size    int                  `json:"Size"`
	Workers int                  `json:"Workers"`
	Values  []float64            `json:"Values"`
	Cycles  uint64               `json:"Cycles,omitempty"`
	Timings map[string][]float64 `json:"Timings"` // Seconds per stopwatch key
}

const exampleFile = `
########################################
Title: "2D gradient"
Size: 4
Elements:
  - Layout: {NCoeff: 2, DofPerCoeff: 2}
    RowIDs: [0, 3]
    Matrix: [[1, 0, 0, 1], [2, 0, 0, 2]]
    Factor: 1
    Scale: {Kind: Vec3, Vector: [1, 2, 0]}
########################################
`

// AccumulateCmd represents the accumulate command
var AccumulateCmd = &cobra.Command{
	Use:   "accumulate",
	Short: "Assemble the element matrices of a case file into a global vector",
	Long:  `Assemble the element matrices of a case file into a global vector`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		acc := &Accumulation{}
		acc.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		acc.OutFile, _ = cmd.Flags().GetString("output")
		acc.ProfileDir, _ = cmd.Flags().GetString("profile")
		acc.Cycles, _ = cmd.Flags().GetBool("cycles")
		if len(acc.ICFile) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", exampleFile)
			return fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		}
		var res *Result
		if res, err = RunAccumulate(acc, viper.GetInt("workers"), logger); err != nil {
			return
		}
		return writeResult(cmd.OutOrStdout(), acc, res)
	},
}

func init() {
	rootCmd.AddCommand(AccumulateCmd)
	AccumulateCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file with the target size and element matrices")
	AccumulateCmd.Flags().StringP("output", "o", "", "write the assembled vector and timings to this YAML file")
	AccumulateCmd.Flags().String("profile", "", "write a CPU profile into this directory")
	AccumulateCmd.Flags().Bool("cycles", false, "count the CPU cycles spent assembling (Linux perf)")
	AccumulateCmd.Flags().IntP("workers", "w", 0, "number of assembly workers (default: number of CPUs)")
	_ = viper.BindPFlag("workers", AccumulateCmd.Flags().Lookup("workers"))
}

func RunAccumulate(acc *Accumulation, workers int, log *zap.Logger) (res *Result, err error) {
	var (
		data []byte
		ip   = &InputParameters.CaseParameters{}
	)
	if data, err = os.ReadFile(acc.ICFile); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		return
	}
	if len(acc.ProfileDir) != 0 {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(acc.ProfileDir), profile.Quiet).Stop()
	}
	var (
		reg   = acc.Watches
		terms []fea.Term
	)
	if reg == nil {
		reg = stopwatch.NewRegistry()
	}
	toc := reg.Tic("run", false)
	if terms, err = ip.Build(); err != nil {
		toc()
		return
	}
	var (
		v = utils.NewVector(ip.Size)
		a = fea.NewAssembler(
			fea.WithWorkers(workers),
			fea.WithLogger(log),
			fea.WithStopwatches(reg))
		assemble = func() error {
			return a.Assemble(context.Background(), v, terms)
		}
		cycles uint64
	)
	if acc.Cycles {
		cc := &stopwatch.CycleCounter{}
		cycles, err = cc.Measure(assemble)
		if errors.Is(err, stopwatch.ErrCyclesUnavailable) {
			log.Warn("cycle count unavailable", zap.Error(err))
			err = nil
		}
	} else {
		err = assemble()
	}
	toc()
	if err != nil {
		return
	}
	if utils.IsNan(v) {
		log.Warn("assembled vector contains NaN", zap.String("title", ip.Title))
	}
	res = &Result{
		Title:   ip.Title,
		Size:    ip.Size,
		Workers: a.Workers(),
		Values:  v.Data(),
		Cycles:  cycles,
		Timings: make(map[string][]float64),
	}
	for _, key := range reg.Keys() {
		res.Timings[key] = reg.Stored(key)
	}
	log.Info("accumulated",
		zap.String("title", ip.Title),
		zap.Int("terms", len(terms)),
		zap.Int("workers", a.Workers()),
		zap.String("memory", utils.GetMemUsage()))
	return
}

func writeResult(w io.Writer, acc *Accumulation, res *Result) (err error) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", res.Title)
	fmt.Fprintf(w, "%v\n", res.Values)
	if res.Cycles != 0 {
		fmt.Fprintf(w, "[%d]\t\t= CPU cycles\n", res.Cycles)
	}
	if len(acc.OutFile) == 0 {
		return
	}
	var data []byte
	if data, err = yaml.Marshal(res); err != nil {
		return
	}
	return os.WriteFile(acc.OutFile, data, 0644)
}
