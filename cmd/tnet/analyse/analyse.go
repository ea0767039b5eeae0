// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package analyse implements a command
// to compare the values sampled for each node
// with a true network.
package analyse

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
	Usage: `analyse --truth <file> [-b|--burnin <value>] [--states]
	[--skip] [--kind <kind>] [--id <name>] [--brief <file>]
	[-o|--output <file>] <trace-file>`,
	Short: "compare node values with a true network",
	Long: `
Command analyse reads a network trace file and compares the values sampled
for each node with the values of a true network.

The argument of the command is the name of the trace file.

The flag --truth is required, and indicates the file with the true network
(see "tnet help truth-files").

By default, all samples are used. With the flag --burnin, or -b, the
indicated number of data lines will be discarded. If the flag --states is
defined, the burn-in value is compared with the state index of each sample.

By default, a sample with a node that does not reach the root of the network
is an error. If the flag --skip is defined, such samples will be ignored.

By default, the compared value is the parent of each node. Use the flag
--kind with the value "desc" to compare the descendant sets of each node.

For each node, the report includes all the sampled values, with the true
value marked between double asterisks, and whether the most frequent value
is the true value. If the true value is as frequent as the most frequent
value, the node is taken as correctly guessed. By default, the report is
printed in the standard output. Use the flag --output, or -o, to define an
output file.

If the flag --brief is defined, a line for each node will be appended to the
indicated file. Each line has the identifier of the analysis, the credibility
of the most frequent value, and TRUE if it is the true value, or FALSE
otherwise. By default, the identifier is the name of the trace file; use the
flag --id to set a different identifier.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var burnin int64
var inStates bool
var skipFlag bool
var truthFile string
var kindFlag string
var idFlag string
var briefFile string
var output string

func setFlags(c *command.Command) {
	c.Flags().Int64Var(&burnin, "burnin", 0, "")
	c.Flags().Int64Var(&burnin, "b", 0, "")
	c.Flags().BoolVar(&inStates, "states", false, "")
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
	c.Flags().StringVar(&truthFile, "truth", "", "")
	c.Flags().StringVar(&kindFlag, "kind", "parent", "")
	c.Flags().StringVar(&idFlag, "id", "", "")
	c.Flags().StringVar(&briefFile, "brief", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting trace file")
	}
	if truthFile == "" {
		return c.UsageError("expecting true network file, flag --truth")
	}
	k, err := consensus.ParseKind(kindFlag)
	if err != nil || k == consensus.Subtree {
		return c.UsageError(fmt.Sprintf("invalid kind %q, flag --kind", kindFlag))
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

	t, err := accuracy.Read(truthFile, s.Nodes)
	if err != nil {
		return err
	}

	d, err := accuracy.NewDetail(s.Agg, k, t)
	if err != nil {
		return err
	}

	if output == "" {
		if err := d.WriteDetail(c.Stdout()); err != nil {
			return err
		}
	} else if err := writeDetail(output, d); err != nil {
		return err
	}

	if briefFile != "" {
		id := idFlag
		if id == "" {
			id = args[0]
		}
		if err := appendBrief(briefFile, id, d); err != nil {
			return err
		}
	}
	return nil
}

func writeDetail(name string, d accuracy.Detail) (err error) {
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

	if err := d.WriteDetail(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func appendBrief(name, id string, d accuracy.Detail) (err error) {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = e
		}
	}()

	if err := d.AppendBrief(f, id); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
