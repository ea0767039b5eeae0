// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package node implements a registry of the nodes
// (i.e., the hosts, farms, or any other epidemiological unit)
// of a transmission network.
package node

import (
	"fmt"
	"strings"
)

// Root is the sentinel parent value
// used for a node that was not infected
// by any other node in the data
// (i.e., the index case).
const Root = "Start"

// Canon returns a node name in its canonical form.
// Any spelling of the root sentinel
// (e.g., "start" or "START")
// is returned as Root.
func Canon(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, Root) {
		return Root
	}
	return name
}

// A Registry is an ordered list of unique node names.
type Registry struct {
	names []string
	index map[string]int
}

// New creates a new registry
// from a list of node names.
func New(names ...string) (*Registry, error) {
	r := &Registry{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, n := range names {
		n = Canon(n)
		if n == "" {
			return nil, fmt.Errorf("empty node name at position %d", len(r.names))
		}
		if n == Root {
			return nil, fmt.Errorf("node name %q is reserved for the root", n)
		}
		if _, dup := r.index[n]; dup {
			return nil, fmt.Errorf("node %q: repeated node name", n)
		}
		r.index[n] = len(r.names)
		r.names = append(r.names, n)
	}
	return r, nil
}

// Candidates returns the node names
// including the root sentinel.
// If first is true,
// the root will be the first element,
// otherwise it will be the last one.
func (r *Registry) Candidates(first bool) []string {
	c := make([]string, 0, len(r.names)+1)
	if first {
		c = append(c, Root)
	}
	c = append(c, r.names...)
	if !first {
		c = append(c, Root)
	}
	return c
}

// Index returns the index of a node name.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[Canon(name)]
	return i, ok
}

// Len returns the number of nodes
// (without the root).
func (r *Registry) Len() int {
	return len(r.names)
}

// Name returns the name of the node at index i.
func (r *Registry) Name(i int) string {
	return r.names[i]
}

// Names returns the node names,
// in the registry order.
func (r *Registry) Names() []string {
	n := make([]string, len(r.names))
	copy(n, r.names)
	return n
}
