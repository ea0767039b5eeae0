// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package accuracy implements the comparison
// of maximum credibility transmission networks
// with a known (i.e., simulated) transmission network.
package accuracy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Truth is the true transmission network.
type Truth struct {
	parents map[string]string
}

// NewTruth returns an empty true network.
func NewTruth() *Truth {
	return &Truth{
		parents: make(map[string]string),
	}
}

// Read reads a true network from a file,
// and checks it against the nodes of a registry.
func Read(name string, reg *node.Registry) (*Truth, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if err := t.Check(reg); err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return t, nil
}

// ReadCSV reads a true network from a CSV file.
//
// The CSV file must have a header
// with the following fields:
//
//   - child (or node), the name of the node
//   - parent (or infector), the name of the parent
//
// If the parent field is not defined,
// the second column will be used.
// A parent named "start"
// (in any case)
// is the root.
//
// Here is an example file:
//
//	Child,Parent
//	farm1,start
//	farm2,farm1
//	farm3,farm1
func ReadCSV(r io.Reader) (*Truth, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.TrimLeadingSpace = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	child, ok := fields["child"]
	if !ok {
		child, ok = fields["node"]
	}
	if !ok {
		return nil, fmt.Errorf("expecting field %q", "child")
	}
	parent, ok := fields["parent"]
	if !ok {
		parent, ok = fields["infector"]
	}
	if !ok {
		if child != 0 || len(head) < 2 {
			return nil, fmt.Errorf("expecting field %q", "parent")
		}
		parent = 1
	}

	t := NewTruth()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		c := node.Canon(row[child])
		if c == "" {
			continue
		}
		if err := t.Add(c, row[parent]); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	if len(t.parents) == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}
	return t, nil
}

// Add sets the parent of a node.
func (t *Truth) Add(child, parent string) error {
	child = node.Canon(child)
	parent = node.Canon(parent)
	if child == "" || child == node.Root {
		return fmt.Errorf("invalid node name %q", child)
	}
	if parent == "" {
		return fmt.Errorf("node %q: empty parent", child)
	}
	if _, dup := t.parents[child]; dup {
		return fmt.Errorf("node %q: repeated node", child)
	}
	t.parents[child] = parent
	return nil
}

// Check returns an error
// if the true network
// is not a valid network
// for the nodes of a registry.
func (t *Truth) Check(reg *node.Registry) error {
	g := simple.NewDirectedGraph()
	for i := range reg.Len() {
		g.AddNode(simple.Node(i))
	}

	for i := range reg.Len() {
		n := reg.Name(i)
		p, ok := t.parents[n]
		if !ok {
			return fmt.Errorf("node %q: undefined parent", n)
		}
		if p == node.Root {
			continue
		}
		j, ok := reg.Index(p)
		if !ok {
			return fmt.Errorf("node %q: unknown parent %q", n, p)
		}
		if i == j {
			return fmt.Errorf("node %q: node is its own parent", n)
		}
		g.SetEdge(g.NewEdge(simple.Node(j), simple.Node(i)))
	}
	for _, n := range t.Nodes() {
		if _, ok := reg.Index(n); !ok {
			return fmt.Errorf("node %q: not in the trace", n)
		}
	}

	if _, err := topo.Sort(g); err != nil {
		return fmt.Errorf("invalid network: %w", network.ErrCycle)
	}
	return nil
}

// Len returns the number of nodes
// in the true network.
func (t *Truth) Len() int {
	return len(t.parents)
}

// Nodes returns the sorted names of the nodes
// in the true network.
func (t *Truth) Nodes() []string {
	ns := make([]string, 0, len(t.parents))
	for n := range t.parents {
		ns = append(ns, n)
	}
	slices.Sort(ns)
	return ns
}

// Parent returns the parent of a node.
func (t *Truth) Parent(name string) (string, bool) {
	p, ok := t.parents[node.Canon(name)]
	return p, ok
}

// Sample returns the true network
// as a sample of the nodes in a registry.
func (t *Truth) Sample(reg *node.Registry) (network.Sample, error) {
	if err := t.Check(reg); err != nil {
		return network.Sample{}, err
	}
	parents := make([]string, reg.Len())
	for i := range parents {
		parents[i] = t.parents[reg.Name(i)]
	}
	return network.New(reg, -1, parents)
}
