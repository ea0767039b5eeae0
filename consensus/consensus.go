// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensus implements the selection
// of maximum credibility transmission networks
// from a set of sampled networks.
//
// The credibility of a network
// is aggregated over the nodes of the network,
// using the credibility of the parent,
// the descendant set,
// or the subtree-membership set,
// of each node.
// The aggregation can be additive
// (the sum of credibilities)
// or multiplicative
// (the sum of the log credibilities).
package consensus

import (
	"fmt"
	"math"

	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/network"
)

// Rule is the rule used to aggregate
// the credibility of the nodes of a network.
type Rule int

// Valid aggregation rules.
const (
	// Multiplicative is the sum of the natural logarithm
	// of the node credibilities.
	Multiplicative Rule = iota

	// Additive is the sum of the node credibilities.
	Additive
)

// Rules is the list of valid rules.
var Rules = []Rule{Multiplicative, Additive}

func (r Rule) String() string {
	switch r {
	case Multiplicative:
		return "multiplicative"
	case Additive:
		return "additive"
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Kind is the kind of value
// used for the credibility of a node.
type Kind int

// Valid kinds of values.
const (
	// Parent is the parent of a node.
	Parent Kind = iota

	// Descendant is the descendant set of a node.
	Descendant

	// Subtree is the subtree-membership set of a node.
	Subtree
)

// Kinds is the list of valid kinds.
var Kinds = []Kind{Parent, Descendant, Subtree}

func (k Kind) String() string {
	switch k {
	case Parent:
		return "parent"
	case Descendant:
		return "desc"
	case Subtree:
		return "subtree"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind returns a kind from its name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

var names = [2][3]string{
	Multiplicative: {Parent: "MPC", Descendant: "MDSC", Subtree: "MSMC"},
	Additive:       {Parent: "MSPC", Descendant: "MSDSC", Subtree: "MSSMC"},
}

// Name returns the name of a maximum credibility network
// for a rule and a kind,
// for example "MPC" for the maximum parent credibility
// using the multiplicative rule.
func Name(r Rule, k Kind) string {
	return names[r][k]
}

// A Score is the credibility of a network.
type Score struct {
	Additive       float64
	Multiplicative float64

	// Unobserved is the number of nodes
	// with a value never observed
	// in the frequency tables.
	// Each one contributes with -Inf
	// to the multiplicative score.
	Unobserved int
}

// Value returns the score for a rule.
func (sc Score) Value(r Rule) float64 {
	if r == Additive {
		return sc.Additive
	}
	return sc.Multiplicative
}

func (sc *Score) add(p float64) {
	sc.Additive += p
	if p == 0 {
		sc.Unobserved++
		sc.Multiplicative = math.Inf(-1)
		return
	}
	sc.Multiplicative += math.Log(p)
}

// A Scorer calculates the credibility of networks
// using the frequency tables of an aggregator.
type Scorer struct {
	agg *cred.Aggregator
}

// NewScorer returns a scorer
// for the frequency tables of an aggregator.
func NewScorer(a *cred.Aggregator) *Scorer {
	return &Scorer{agg: a}
}

// Score returns the credibility of a network
// for a kind of value.
func (sc *Scorer) Score(s network.Sample, k Kind) (Score, error) {
	all, err := sc.scores(s, k == Parent)
	if err != nil {
		return Score{}, err
	}
	return all[k], nil
}

// Scores returns the credibility of a network
// for all kinds of values.
func (sc *Scorer) Scores(s network.Sample) ([3]Score, error) {
	return sc.scores(s, false)
}

func (sc *Scorer) scores(s network.Sample, onlyParent bool) ([3]Score, error) {
	var all [3]Score
	for i := range s.Len() {
		all[Parent].add(sc.agg.ParentProb(i, s.ParentName(i)))
		if onlyParent {
			continue
		}

		d, err := s.Descendants(i)
		if err != nil {
			return all, err
		}
		all[Descendant].add(sc.agg.DescProb(i, d))
		all[Subtree].add(sc.agg.MemberProb(d.With(s.Registry().Name(i))))
	}
	return all, nil
}
