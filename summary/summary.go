// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package summary implements the summary
// of a transmission network trace
// into maximum credibility networks.
package summary

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
	"github.com/mdhall272/beastlier/trace"
)

// Options are the options used to read a trace.
type Options struct {
	Burnin trace.Burnin

	// If Skip is true,
	// samples with an ancestor chain
	// that does not reach the root
	// are skipped,
	// otherwise they produce an error.
	Skip bool
}

// A Summary is the summary of a trace.
type Summary struct {
	Name  string
	Nodes *node.Registry
	Agg   *cred.Aggregator
	Sel   *consensus.Selector

	// Samples are the retained samples.
	Samples []network.Sample

	// Skipped are the errors of the skipped samples.
	Skipped []error

	// Events are the improvements
	// of the best networks
	// in sample order.
	Events []consensus.Event

	// Rows is the number of rows read
	// (including the burn-in).
	Rows int
}

// Read reads a trace file
// and builds its summary.
func Read(name string, opt Options) (*Summary, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := New(f, opt)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	s.Name = name
	return s, nil
}

// New builds the summary of a trace.
// The trace is read once,
// and the retained samples are scanned twice:
// first to build the frequency tables,
// and then to find the best networks.
func New(r io.Reader, opt Options) (*Summary, error) {
	tr, err := trace.NewReader(r)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Nodes: tr.Nodes(),
		Agg:   cred.New(tr.Nodes()),
	}
	f := trace.NewFilter(tr, opt.Burnin)
	for {
		row, err := f.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := row.Check(); err != nil {
			if !opt.Skip {
				return nil, fmt.Errorf("on line %d: %w", row.Line, err)
			}
			s.Skipped = append(s.Skipped, fmt.Errorf("on line %d: %w", row.Line, err))
			continue
		}
		if err := s.Agg.Accumulate(row.Sample); err != nil {
			return nil, fmt.Errorf("on line %d: %w", row.Line, err)
		}
		s.Samples = append(s.Samples, row.Sample)
	}
	s.Rows = f.ReadRows()

	s.Sel = consensus.NewSelector(s.Agg)
	for _, smp := range s.Samples {
		ev, err := s.Sel.Add(smp)
		if err != nil {
			return nil, err
		}
		s.Events = append(s.Events, ev...)
	}
	return s, nil
}

// Marginal names
// for the assignments of the most frequent value
// of each node.
const (
	MarginalParent     = "marginal parent"
	MarginalDescendant = "marginal desc"
)

// Assignments returns the best network
// for each rule and kind,
// followed by the marginal assignments
// of parents and descendant sets.
// Combinations without a best network
// (e.g., on an empty trace)
// are ignored.
func (s *Summary) Assignments() ([]consensus.Assignment, error) {
	var assign []consensus.Assignment
	for _, k := range consensus.Kinds {
		for _, r := range consensus.Rules {
			smp, _, ok := s.Sel.Best(r, k)
			if !ok {
				continue
			}
			as, err := consensus.FromSample(consensus.Name(r, k), s.Agg, smp, k)
			if err != nil {
				return nil, err
			}
			assign = append(assign, as)
		}
	}
	if s.Agg.Samples() == 0 {
		return assign, nil
	}

	mp, err := consensus.Marginal(MarginalParent, s.Agg, consensus.Parent)
	if err != nil {
		return nil, err
	}
	md, err := consensus.Marginal(MarginalDescendant, s.Agg, consensus.Descendant)
	if err != nil {
		return nil, err
	}
	return append(assign, mp, md), nil
}
