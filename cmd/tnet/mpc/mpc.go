// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mpc implements a command
// to find the maximum credibility networks
// in a network trace.
package mpc

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/mdhall272/beastlier/accuracy"
	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/summary"
	"github.com/mdhall272/beastlier/trace"
)

var Command = &command.Command{
	Usage: `mpc [-b|--burnin <value>] [--states] [--skip]
	[--truth <file>] [-o|--output <file>]
	[--dot <file>] [--plot <prefix>] <trace-file>`,
	Short: "find maximum credibility networks",
	Long: `
Command mpc reads a network trace file and finds the sampled networks with
the maximum credibility, using the parent, the descendant set, and the
subtree membership set of each node, and both the multiplicative and the
additive rules (see "tnet help credibility").

The argument of the command is the name of the trace file.

By default, all samples are used. With the flag --burnin, or -b, the
indicated number of data lines will be discarded. If the flag --states is
defined, the burn-in value is compared with the state index of each sample.

By default, a sample with a node that does not reach the root of the network
is an error. If the flag --skip is defined, such samples will be ignored.

Each time a sample improves a best network, a message is printed in the
standard output.

The best networks, and the marginal assignments of each node, are written in
a comma-delimited file. By default the name of the file is the name of the
trace file with the suffix "-mpc.csv". Use the flag --output, or -o, to set a
different name.

If the flag --truth is defined, the indicated file will be used as the true
network (see "tnet help truth-files"), and the number of nodes correctly
assigned by each network will be reported.

If the flag --dot is defined, the MPC network will be written in the
indicated file using the Graphviz DOT format.

If the flag --plot is defined, the score of each sampled network will be
plotted, using the indicated prefix for the image files. A file with the
suffix "-mult.png" will have the multiplicative scores, and a file with the
suffix "-add.png" the additive scores.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var burnin int64
var inStates bool
var skipFlag bool
var truthFile string
var output string
var dotFile string
var plotPrefix string

func setFlags(c *command.Command) {
	c.Flags().Int64Var(&burnin, "burnin", 0, "")
	c.Flags().Int64Var(&burnin, "b", 0, "")
	c.Flags().BoolVar(&inStates, "states", false, "")
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
	c.Flags().StringVar(&truthFile, "truth", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&dotFile, "dot", "", "")
	c.Flags().StringVar(&plotPrefix, "plot", "", "")
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
		return fmt.Errorf("on file %q: no samples after burn-in (%d rows read)", args[0], s.Rows)
	}

	var t *accuracy.Truth
	if truthFile != "" {
		t, err = accuracy.Read(truthFile, s.Nodes)
		if err != nil {
			return err
		}
	}

	for _, ev := range s.Events {
		fmt.Fprintf(c.Stdout(), "State %d: new highest %s credibility: %.6f\n", ev.State, consensus.Name(ev.Rule, ev.Kind), ev.Value)
	}
	if u := s.Sel.Unobserved(); u > 0 {
		fmt.Fprintf(c.Stderr(), "WARNING: on file %q: %d node values without credibility\n", args[0], u)
	}

	assign, err := s.Assignments()
	if err != nil {
		return err
	}

	if output == "" {
		output = args[0] + "-mpc.csv"
	}
	if err := writeAssignments(output, assign, t); err != nil {
		return err
	}

	if t != nil {
		for _, as := range assign {
			r, err := accuracy.Score(as, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Stdout(), "%s\n", r.Summary())
		}
	}

	fmt.Fprintf(c.Stdout(), "network\tmean\tlower\tmedian\tupper\n")
	for _, k := range consensus.Kinds {
		for _, r := range consensus.Rules {
			sm := s.Sel.Summary(r, k)
			fmt.Fprintf(c.Stdout(), "%s\t%.6f\t%.6f\t%.6f\t%.6f\n", consensus.Name(r, k), sm.Mean, sm.Lower, sm.Median, sm.Upper)
		}
	}

	if dotFile != "" {
		mpc := consensus.Name(consensus.Multiplicative, consensus.Parent)
		for _, as := range assign {
			if as.Name != mpc {
				continue
			}
			if err := writeDOT(dotFile, as); err != nil {
				return err
			}
		}
	}

	if plotPrefix != "" {
		for _, r := range consensus.Rules {
			name := fmt.Sprintf("%s-mult.png", plotPrefix)
			if r == consensus.Additive {
				name = fmt.Sprintf("%s-add.png", plotPrefix)
			}
			if err := tracePlot(name, s, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAssignments(name string, assign []consensus.Assignment, t *accuracy.Truth) (err error) {
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

	if err := accuracy.WriteCSV(f, assign, t); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeDOT(name string, as consensus.Assignment) (err error) {
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

	if err := accuracy.WriteDOT(f, as); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
