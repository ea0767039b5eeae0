// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"io"

	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

// Burnin defines the initial part of a trace
// that is discarded.
type Burnin struct {
	// Value is the burn-in threshold.
	Value int64

	// If InStates is true,
	// the threshold is compared with the state index,
	// otherwise it is the number of discarded data lines.
	InStates bool
}

// Keep returns true if a row,
// with the given line number and state index,
// is retained after the burn-in.
// In line mode,
// the first Value data lines are discarded;
// in state mode,
// rows with a state index smaller than, or equal to,
// the threshold are discarded.
func (b Burnin) Keep(line int, state int64) bool {
	if b.InStates {
		return state > b.Value
	}
	return int64(line) > b.Value
}

// Apply returns the rows retained after the burn-in.
func (b Burnin) Apply(rows []Row) []Row {
	var kept []Row
	for _, r := range rows {
		if b.Keep(r.Line, r.State) {
			kept = append(kept, r)
		}
	}
	return kept
}

// A Filter reads the rows of a trace
// retained after the burn-in.
type Filter struct {
	r    *Reader
	b    Burnin
	read int
	kept int
}

// NewFilter returns a filter for a trace reader.
func NewFilter(r *Reader, b Burnin) *Filter {
	return &Filter{r: r, b: b}
}

// Read returns the next retained row.
// At the end of the trace it returns io.EOF.
func (f *Filter) Read() (Row, error) {
	for {
		row, err := f.r.Read()
		if err != nil {
			return Row{}, err
		}
		f.read++
		if !f.b.Keep(row.Line, row.State) {
			continue
		}
		f.kept++
		return row, nil
	}
}

// Nodes returns the nodes of the trace.
func (f *Filter) Nodes() *node.Registry {
	return f.r.Nodes()
}

// Kept returns the number of retained rows
// read so far.
func (f *Filter) Kept() int {
	return f.kept
}

// ReadRows returns the number of rows
// read so far,
// including the discarded ones.
func (f *Filter) ReadRows() int {
	return f.read
}

// ReadAll reads all the samples from a trace
// that are retained after the burn-in.
func ReadAll(r io.Reader, b Burnin) (*node.Registry, []network.Sample, error) {
	tr, err := NewReader(r)
	if err != nil {
		return nil, nil, err
	}

	f := NewFilter(tr, b)
	var samples []network.Sample
	for {
		row, err := f.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		samples = append(samples, row.Sample)
	}
	return tr.Nodes(), samples, nil
}
