// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package accuracy

import (
	"fmt"

	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/node"
)

// A Result is the comparison of an assignment
// with the true network.
type Result struct {
	Name    string
	Correct int
	Total   int

	hits []bool
}

// Score compares the values of an assignment
// with the values of the true network.
func Score(as consensus.Assignment, t *Truth) (Result, error) {
	values, err := trueValues(as.Kind, t, as.Nodes())
	if err != nil {
		return Result{}, err
	}

	r := Result{
		Name:  as.Name,
		Total: as.Len(),
		hits:  make([]bool, as.Len()),
	}
	for i := range as.Len() {
		if as.Value(i) == values[i] {
			r.hits[i] = true
			r.Correct++
		}
	}
	return r, nil
}

// Hit returns true if the value of the node at index i
// is the true value.
func (r Result) Hit(i int) bool {
	return r.hits[i]
}

// Proportion returns the proportion of nodes
// with the true value.
func (r Result) Proportion() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// A Candidate is an observed value of a node.
type Candidate struct {
	Value string
	Count int
	Prob  float64

	// True is true
	// if the value is the value of the true network.
	True bool
}

// A NodeDetail is the list of observed values
// of a node,
// compared with the value of the true network.
type NodeDetail struct {
	Node  string
	Truth string
	Total int

	// Candidates are the observed values,
	// sorted from the most to the least frequent.
	// If the true value was never observed
	// it is added at the end,
	// with zero credibility.
	Candidates []Candidate

	// Best is the most frequent value.
	// If the true value is as frequent
	// as the most frequent value,
	// the true value is used.
	Best Candidate

	Correct bool
}

// A Detail is the comparison of the observed values
// of all nodes
// with the true network.
type Detail struct {
	Kind    consensus.Kind
	Nodes   []NodeDetail
	Correct int
}

// NewDetail compares the observed values
// (parents, or descendant sets)
// of each node
// with the values of the true network.
func NewDetail(a *cred.Aggregator, k consensus.Kind, t *Truth) (Detail, error) {
	reg := a.Nodes()
	values, err := trueValues(k, t, reg)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Kind:  k,
		Nodes: make([]NodeDetail, reg.Len()),
	}
	for i := range reg.Len() {
		nd := NodeDetail{
			Node:  reg.Name(i),
			Truth: values[i],
			Total: a.Samples(),
		}

		switch k {
		case consensus.Parent:
			f := a.Parents(i)
			for _, p := range f.Ranked() {
				nd.add(p, f.Count(p), a.ParentProb(i, p))
			}
		case consensus.Descendant:
			f := a.Descendants(i)
			for _, s := range f.Ranked() {
				nd.add(s.String(), f.Count(s), a.DescProb(i, s))
			}
		}
		nd.setBest()
		if nd.Correct {
			d.Correct++
		}
		d.Nodes[i] = nd
	}
	return d, nil
}

// Proportion returns the proportion of nodes
// in which the most frequent value
// is the true value.
func (d Detail) Proportion() float64 {
	if len(d.Nodes) == 0 {
		return 0
	}
	return float64(d.Correct) / float64(len(d.Nodes))
}

func (nd *NodeDetail) add(v string, count int, p float64) {
	nd.Candidates = append(nd.Candidates, Candidate{
		Value: v,
		Count: count,
		Prob:  p,
		True:  v == nd.Truth,
	})
}

func (nd *NodeDetail) setBest() {
	truth := -1
	for i, c := range nd.Candidates {
		if c.True {
			truth = i
			break
		}
	}
	if truth < 0 {
		nd.Candidates = append(nd.Candidates, Candidate{
			Value: nd.Truth,
			True:  true,
		})
		truth = len(nd.Candidates) - 1
	}

	nd.Best = nd.Candidates[truth]
	nd.Correct = true
	for _, c := range nd.Candidates {
		if c.Count > nd.Best.Count {
			nd.Best = c
			nd.Correct = false
		}
	}
}

func trueValues(k consensus.Kind, t *Truth, reg *node.Registry) ([]string, error) {
	s, err := t.Sample(reg)
	if err != nil {
		return nil, err
	}

	values := make([]string, reg.Len())
	for i := range values {
		switch k {
		case consensus.Parent:
			values[i] = s.ParentName(i)
		case consensus.Descendant:
			d, err := s.Descendants(i)
			if err != nil {
				return nil, err
			}
			values[i] = d.String()
		default:
			return nil, fmt.Errorf("comparison not defined for kind %q", k)
		}
	}
	return values, nil
}
