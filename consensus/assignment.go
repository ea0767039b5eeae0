// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus

import (
	"fmt"

	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

// An Assignment is a value chosen for each node,
// either from a network,
// or from the most frequent value of each node.
type Assignment struct {
	// Name of the assignment
	// (e.g., "MPC").
	Name string

	// Kind of the assigned values.
	// An assignment from a network
	// is always of the kind Parent.
	Kind Kind

	reg    *node.Registry
	values []string
	probs  []float64
	sample network.Sample
	whole  bool
}

// FromSample returns the assignment of parents
// defined by a network.
// The credibility of each node
// is the credibility of its value
// for the given kind.
func FromSample(name string, a *cred.Aggregator, s network.Sample, k Kind) (Assignment, error) {
	reg := a.Nodes()
	as := Assignment{
		Name:   name,
		Kind:   Parent,
		reg:    reg,
		values: make([]string, reg.Len()),
		probs:  make([]float64, reg.Len()),
		sample: s,
		whole:  true,
	}
	for i := range as.values {
		as.values[i] = s.ParentName(i)
		switch k {
		case Parent:
			as.probs[i] = a.ParentProb(i, as.values[i])
		case Descendant, Subtree:
			d, err := s.Descendants(i)
			if err != nil {
				return Assignment{}, err
			}
			if k == Descendant {
				as.probs[i] = a.DescProb(i, d)
				continue
			}
			as.probs[i] = a.MemberProb(d.With(reg.Name(i)))
		}
	}
	return as, nil
}

// Marginal returns the assignment
// of the most frequent value of each node,
// chosen independently for each node.
// If two values have the same frequency,
// the first observed value is chosen.
// Only Parent and Descendant kinds are valid.
func Marginal(name string, a *cred.Aggregator, k Kind) (Assignment, error) {
	reg := a.Nodes()
	as := Assignment{
		Name:   name,
		Kind:   k,
		reg:    reg,
		values: make([]string, reg.Len()),
		probs:  make([]float64, reg.Len()),
	}
	for i := range as.values {
		switch k {
		case Parent:
			r := a.Parents(i).Ranked()
			if len(r) == 0 {
				continue
			}
			as.values[i] = r[0]
			as.probs[i] = a.ParentProb(i, r[0])
		case Descendant:
			r := a.Descendants(i).Ranked()
			if len(r) == 0 {
				continue
			}
			as.values[i] = r[0].String()
			as.probs[i] = a.DescProb(i, r[0])
		default:
			return Assignment{}, fmt.Errorf("marginal assignment not defined for kind %q", k)
		}
	}
	return as, nil
}

// Len returns the number of nodes in the assignment.
func (as Assignment) Len() int {
	return len(as.values)
}

// Nodes returns the nodes of the assignment.
func (as Assignment) Nodes() *node.Registry {
	return as.reg
}

// Prob returns the credibility of the value
// assigned to the node at index i.
func (as Assignment) Prob(i int) float64 {
	return as.probs[i]
}

// Sample returns the network of the assignment.
// It returns false if the assignment
// is a marginal assignment.
func (as Assignment) Sample() (network.Sample, bool) {
	return as.sample, as.whole
}

// Value returns the value assigned
// to the node at index i.
func (as Assignment) Value(i int) string {
	return as.values[i]
}
