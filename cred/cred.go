// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cred implements the frequency tables
// of the parents,
// descendant sets,
// and subtree-membership sets
// of the nodes in a set of sampled transmission networks.
//
// The credibility of a value
// is its empirical probability
// (i.e., the number of samples
// in which the value is observed,
// divided by the number of samples).
package cred

import (
	"fmt"
	"slices"

	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

// An Aggregator accumulates the frequency tables
// of a set of samples.
type Aggregator struct {
	reg     *node.Registry
	samples int

	parents []*Freq[string]
	desc    []*Freq[network.Set]

	// subtree-membership sets are counted
	// by the set itself.
	members *Freq[network.Set]
}

// New returns an empty aggregator
// for the nodes of a registry.
func New(reg *node.Registry) *Aggregator {
	a := &Aggregator{
		reg:     reg,
		parents: make([]*Freq[string], reg.Len()),
		desc:    make([]*Freq[network.Set], reg.Len()),
		members: NewFreq[network.Set](),
	}
	for i := range a.parents {
		a.parents[i] = NewFreq[string]()
		a.desc[i] = NewFreq[network.Set]()
	}
	return a
}

// Accumulate adds a sample to the frequency tables.
// If the sample has an ancestor chain
// that does not reach the root,
// it returns an error wrapping network.ErrCycle
// and the tables are not modified.
func (a *Aggregator) Accumulate(s network.Sample) error {
	if err := a.checkNodes(s.Registry()); err != nil {
		return fmt.Errorf("state %d: %v", s.State, err)
	}

	desc := make([]network.Set, a.reg.Len())
	for i := range desc {
		d, err := s.Descendants(i)
		if err != nil {
			return err
		}
		desc[i] = d
	}

	for i, d := range desc {
		a.parents[i].Add(s.ParentName(i))
		a.desc[i].Add(d)
		a.members.Add(d.With(a.reg.Name(i)))
	}
	a.samples++
	return nil
}

// Descendants returns the frequency table
// of the descendant sets
// of the node at index n.
func (a *Aggregator) Descendants(n int) *Freq[network.Set] {
	return a.desc[n]
}

// DescProb returns the credibility
// of a descendant set of the node at index n.
func (a *Aggregator) DescProb(n int, d network.Set) float64 {
	return a.prob(a.desc[n].Count(d))
}

// Members returns the frequency table
// of the subtree-membership sets.
func (a *Aggregator) Members() *Freq[network.Set] {
	return a.members
}

// MemberProb returns the credibility
// of a subtree-membership set.
func (a *Aggregator) MemberProb(m network.Set) float64 {
	return a.prob(a.members.Count(m))
}

// Merge adds the frequency tables
// of another aggregator
// built with the same nodes.
func (a *Aggregator) Merge(o *Aggregator) error {
	if err := a.checkNodes(o.reg); err != nil {
		return err
	}
	for i := range a.parents {
		a.parents[i].Merge(o.parents[i])
		a.desc[i].Merge(o.desc[i])
	}
	a.members.Merge(o.members)
	a.samples += o.samples
	return nil
}

// Nodes returns the nodes of the aggregator.
func (a *Aggregator) Nodes() *node.Registry {
	return a.reg
}

// ParentProb returns the credibility
// of a parent of the node at index n.
func (a *Aggregator) ParentProb(n int, parent string) float64 {
	return a.prob(a.parents[n].Count(node.Canon(parent)))
}

// Parents returns the frequency table
// of the parents of the node at index n.
func (a *Aggregator) Parents(n int) *Freq[string] {
	return a.parents[n]
}

// Samples returns the number of accumulated samples.
func (a *Aggregator) Samples() int {
	return a.samples
}

func (a *Aggregator) prob(count int) float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(count) / float64(a.samples)
}

func (a *Aggregator) checkNodes(reg *node.Registry) error {
	if reg == a.reg {
		return nil
	}
	if reg == nil || !slices.Equal(reg.Names(), a.reg.Names()) {
		return fmt.Errorf("nodes do not match the aggregator nodes")
	}
	return nil
}
