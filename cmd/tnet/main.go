// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Tnet is a tool to summarize posterior samples
// of transmission networks.
package main

import (
	"github.com/js-arias/command"
	"github.com/mdhall272/beastlier/cmd/tnet/analyse"
	"github.com/mdhall272/beastlier/cmd/tnet/batch"
	"github.com/mdhall272/beastlier/cmd/tnet/freq"
	"github.com/mdhall272/beastlier/cmd/tnet/mpc"
	"github.com/mdhall272/beastlier/cmd/tnet/nodes"
)

var app = &command.Command{
	Usage: "tnet <command> [<argument>...]",
	Short: "a tool to summarize transmission network samples",
}

func init() {
	app.Add(analyse.Command)
	app.Add(batch.Command)
	app.Add(freq.Command)
	app.Add(mpc.Command)
	app.Add(nodes.Command)
}

func main() {
	app.Main()
}
