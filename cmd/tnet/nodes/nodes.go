// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodes implements a command to print
// the list of nodes in a network trace.
package nodes

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/mdhall272/beastlier/trace"
)

var Command = &command.Command{
	Usage: "nodes [--start] <trace-file>",
	Short: "print the nodes of a network trace",
	Long: `
Command nodes reads the header of a network trace file and prints the names of
the nodes in the standard output, in the order of the trace columns.

The argument of the command is the name of the trace file.

If the flag --start is defined, the root of the networks ("Start") will be
printed as the first node.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var withStart bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&withStart, "start", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting trace file")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tr, err := trace.NewReader(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	var ls []string
	if withStart {
		ls = tr.Nodes().Candidates(true)
	} else {
		ls = tr.Nodes().Names()
	}
	for _, n := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", n)
	}
	return nil
}
