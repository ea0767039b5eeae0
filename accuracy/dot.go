// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package accuracy

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/node"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type dotNode struct {
	id   int64
	name string
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.name }

type dotEdge struct {
	from, to graph.Node
	prob     float64
}

func (e dotEdge) From() graph.Node { return e.from }
func (e dotEdge) To() graph.Node   { return e.to }
func (e dotEdge) ReversedEdge() graph.Edge {
	return dotEdge{from: e.to, to: e.from, prob: e.prob}
}

func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.FormatFloat(e.prob, 'f', 3, 64)},
	}
}

// WriteDOT writes a network assignment
// as a Graphviz DOT graph,
// with an edge from each parent to its child,
// labeled with the credibility of the child value.
func WriteDOT(w io.Writer, as consensus.Assignment) error {
	if as.Kind != consensus.Parent {
		return fmt.Errorf("assignment %q: expecting parent values", as.Name)
	}

	reg := as.Nodes()
	g := simple.NewDirectedGraph()
	nodes := make([]dotNode, reg.Len())
	for i := range nodes {
		nodes[i] = dotNode{id: int64(i), name: reg.Name(i)}
		g.AddNode(nodes[i])
	}
	root := dotNode{id: int64(reg.Len()), name: node.Root}
	g.AddNode(root)

	for i := range nodes {
		p := as.Value(i)
		from := root
		if p != node.Root {
			j, ok := reg.Index(p)
			if !ok {
				return fmt.Errorf("assignment %q: node %q: unknown parent %q", as.Name, reg.Name(i), p)
			}
			if j == i {
				return fmt.Errorf("assignment %q: node %q: node is its own parent", as.Name, p)
			}
			from = nodes[j]
		}
		g.SetEdge(dotEdge{from: from, to: nodes[i], prob: as.Prob(i)})
	}

	b, err := dot.Marshal(g, as.Name, "", "\t")
	if err != nil {
		return fmt.Errorf("assignment %q: %v", as.Name, err)
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
