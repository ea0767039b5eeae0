// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package freq implements a command
// to calculate the credibility
// of the node values in a network trace.
package freq

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/mdhall272/beastlier/summary"
	"github.com/mdhall272/beastlier/trace"
)

var Command = &command.Command{
	Usage: `freq [-b|--burnin <value>] [--states] [--skip]
	[-o|--output <file>] <trace-file>`,
	Short: "calculate node value credibilities",
	Long: `
Command freq reads a network trace file and writes the frequency of each
parent, descendant set, and subtree membership set found in the retained
samples.

The argument of the command is the name of the trace file.

By default, all samples are used. With the flag --burnin, or -b, the
indicated number of data lines will be discarded. If the flag --states is
defined, the burn-in value is compared with the state index of each sample.

By default, a sample with a node that does not reach the root of the network
is an error. If the flag --skip is defined, such samples will be ignored.

By default, the output will be printed in the standard output. Use the flag
--output, or -o, to define an output file.

The output is a tab-delimited file with the following columns:

	- kind   the kind of value, either "parent", "desc", or "subtree"
	- node   the node (empty for "subtree" values, as subtree membership
	         sets are counted without regard of the node)
	- value  the value
	- count  the number of samples with the value
	- freq   the credibility of the value
	`,
	SetFlags: setFlags,
	Run:      run,
}

var burnin int64
var inStates bool
var skipFlag bool
var output string

func setFlags(c *command.Command) {
	c.Flags().Int64Var(&burnin, "burnin", 0, "")
	c.Flags().Int64Var(&burnin, "b", 0, "")
	c.Flags().BoolVar(&inStates, "states", false, "")
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting trace file")
	}

	s, err := summary.Read(args[0], summary.Options{
		Burnin: trace.Burnin{
			Value:    burnin,
			InStates: inStates,
		},
		Skip: skipFlag,
	})
	if err != nil {
		return err
	}
	for _, e := range s.Skipped {
		fmt.Fprintf(c.Stderr(), "WARNING: on file %q: skipped sample: %v\n", args[0], e)
	}
	if s.Agg.Samples() == 0 {
		fmt.Fprintf(c.Stderr(), "WARNING: on file %q: no samples after burn-in\n", args[0])
	}

	if output == "" {
		return s.Agg.WriteTSV(c.Stdout())
	}
	if err := writeFreq(output, s); err != nil {
		return err
	}
	return nil
}

func writeFreq(name string, s *summary.Summary) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = e
		}
	}()

	if err := s.Agg.WriteTSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
