// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package network implements transmission networks
// sampled by an MCMC run
// (i.e., the assignment of a parent,
// or infector,
// to each node),
// and the ancestry relations of the nodes
// in a sampled network.
package network

import (
	"errors"
	"fmt"

	"github.com/mdhall272/beastlier/node"
)

// RootIndex is the parent index
// used for a node without a parent
// (i.e., a node whose parent is the root).
const RootIndex = -1

// ErrCycle is returned when the ancestor chain of a node
// never reaches the root.
var ErrCycle = errors.New("ancestor chain does not reach the root")

// A Sample is a single sampled transmission network.
type Sample struct {
	// State is the MCMC state index of the sample.
	State int64

	reg     *node.Registry
	parents []int
}

// New creates a new sample
// from a list of parent names,
// one for each node in the registry
// in the registry order.
func New(reg *node.Registry, state int64, parents []string) (Sample, error) {
	if len(parents) != reg.Len() {
		return Sample{}, fmt.Errorf("state %d: got %d parents, want %d", state, len(parents), reg.Len())
	}

	s := Sample{
		State:   state,
		reg:     reg,
		parents: make([]int, len(parents)),
	}
	for i, p := range parents {
		p = node.Canon(p)
		if p == node.Root {
			s.parents[i] = RootIndex
			continue
		}
		j, ok := reg.Index(p)
		if !ok {
			return Sample{}, fmt.Errorf("state %d: node %q: unknown parent %q", state, reg.Name(i), p)
		}
		s.parents[i] = j
	}
	return s, nil
}

// Len returns the number of nodes in the sample.
func (s Sample) Len() int {
	return len(s.parents)
}

// Parent returns the index of the parent
// of the node at index i.
// If the parent is the root,
// it returns RootIndex.
func (s Sample) Parent(i int) int {
	return s.parents[i]
}

// ParentName returns the name of the parent
// of the node at index i.
func (s Sample) ParentName(i int) string {
	p := s.parents[i]
	if p == RootIndex {
		return node.Root
	}
	return s.reg.Name(p)
}

// Registry returns the node registry
// used by the sample.
func (s Sample) Registry() *node.Registry {
	return s.reg
}

// Check returns an error wrapping ErrCycle
// if the ancestor chain of any node
// does not reach the root.
func (s Sample) Check() error {
	for i := range s.parents {
		if _, err := s.reaches(i, RootIndex); err != nil {
			return err
		}
	}
	return nil
}

// Descendants returns the descendant set of a target node
// (i.e., all nodes whose ancestor chain
// reaches the target before reaching the root).
func (s Sample) Descendants(target int) (Set, error) {
	var desc []string
	for i := range s.parents {
		if i == target {
			continue
		}
		ok, err := s.reaches(i, target)
		if err != nil {
			return Set{}, err
		}
		if ok {
			desc = append(desc, s.reg.Name(i))
		}
	}
	return NewSet(desc...), nil
}

// Members returns the subtree-membership set of a target node
// (i.e., its descendant set plus the node itself).
func (s Sample) Members(target int) (Set, error) {
	desc, err := s.Descendants(target)
	if err != nil {
		return Set{}, err
	}
	return desc.With(s.reg.Name(target)), nil
}

// Reaches walks the ancestor chain of node m
// and returns true if target is found
// before the root.
// The walk is bounded by the number of nodes
// plus one.
func (s Sample) reaches(m, target int) (bool, error) {
	cur := m
	for range len(s.parents) + 1 {
		p := s.parents[cur]
		if p == target {
			return true, nil
		}
		if p == RootIndex {
			return false, nil
		}
		cur = p
	}
	return false, fmt.Errorf("state %d: node %q: %w", s.State, s.reg.Name(m), ErrCycle)
}
