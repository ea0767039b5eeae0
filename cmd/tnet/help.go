// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(credibilityGuide)
	app.Add(traceFilesGuide)
	app.Add(truthFilesGuide)
}

var traceFilesGuide = &command.Command{
	Usage: "trace-files",
	Short: "about network trace files",
	Long: `
A network trace file is the output of a Bayesian sampler of transmission
networks. Each row is a sampled network, in which each node (e.g., a farm or a
host) has a single parent, i.e., the node that infected it. The root of the
network is called "Start", and a node with "Start" as parent is an index case.

A trace file is a tab-delimited file with the following columns:

	- state              the state index of the sample in the chain
	- <node>_infector    the parent of the node in the sample

There is one "_infector" column for each node of the network. Lines starting
with '#' are taken as comments. Here is an example file:

	# network trace
	state	A_infector	B_infector	C_infector
	0	Start	A	A
	1000	Start	A	B
	2000	C	Start	B

In a valid network, the ancestor chain of every node reaches "Start". A
sample that violates this rule is an error, unless the flag --skip is used, in
which case the sample is ignored with a warning.

The first samples of a chain are usually discarded as burn-in. Commands that
read a trace accept the flag --burnin, or -b, with the number of data lines
to discard. If the flag --states is used, the burn-in value is compared with
the state index of each sample, and samples with a state smaller than, or
equal to, the burn-in value are discarded. A truncated last line (for
example, from a chain that is still running) is ignored.
	`,
}

var truthFilesGuide = &command.Command{
	Usage: "truth-files",
	Short: "about true network files",
	Long: `
When the true network is known (for example, in a simulation), it can be used
to evaluate the accuracy of the summary networks. A true network file is a
comma-delimited file with the following columns:

	- child    the name of the node (the "node" column name is also valid)
	- parent   the name of the parent (the "infector" column name is also
	           valid)

If the file has no "parent" or "infector" column, and the first column is the
child, the second column is used as the parent. Lines starting with '#' are
taken as comments. Here is an example file:

	# true network
	child,parent
	A,Start
	B,A
	C,B

Every node in the trace must have a true parent, and the true network must be
a valid network.
	`,
}

var credibilityGuide = &command.Command{
	Usage: "credibility",
	Short: "about maximum credibility networks",
	Long: `
The credibility of a value of a node (for example, its parent) is the
proportion of the retained samples in which the node has that value. Three
kinds of values are used:

	- parent    the parent of the node
	- desc      the set of all descendants of the node
	- subtree   the set of the node and all its descendants; this set is
	            counted without regard of the node that defines it

The credibility of a whole network is calculated by combining the credibility
of each node, using one of two rules:

	- multiplicative  the sum of the logarithm of the credibility of each
	                  node; a value never observed has a credibility of
	                  zero, so the network has a score of -Inf
	- additive        the sum of the credibility of each node

The sampled network with the highest score is the maximum credibility network
of the given kind and rule. As there are three kinds and two rules, there are
six summary networks:

	- MPC     maximum parent credibility (multiplicative)
	- MSPC    maximum sum of parent credibilities (additive)
	- MDSC    maximum descendant set credibility (multiplicative)
	- MSDSC   maximum sum of descendant set credibilities (additive)
	- MSMC    maximum subtree membership credibility (multiplicative)
	- MSSMC   maximum sum of subtree membership credibilities (additive)

If two networks have the same score, the first sampled network is kept.

The marginal summaries ("marginal parent" and "marginal desc") are not
sampled networks, but the most frequent value of each node, chosen
independently for each node. A marginal parent assignment might not be a
valid network. Note that in tnet the name MPC is always a sampled network;
the assignment of the most credible parent of each node, sometimes also
called MPC, is printed as "marginal parent".
	`,
}
