// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trace implements a reader
// for the transmission network trace
// written by an MCMC run.
//
// A trace is a tab-delimited file (TSV)
// with a column for the state index,
// and a column for the sampled parent
// of each node.
package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

// Suffix is the suffix of the trace columns
// that store the parent of a node.
const Suffix = "_infector"

// A Row is a sample read from a trace,
// with the number of the data line
// in which it was found.
type Row struct {
	network.Sample

	// Line is the 1-based index of the row
	// (the header and comments are not counted).
	Line int
}

// A Reader reads samples from a trace.
type Reader struct {
	tsv   *csv.Reader
	src   *tailReader
	reg   *node.Registry
	state int
	cols  []int
	line  int
	done  bool
}

// NewReader returns a reader for a trace
// and reads the trace header.
//
// Here is an example trace:
//
//	# network log
//	state	A_infector	B_infector	C_infector
//	0	Start	A	A
//	1000	Start	A	B
//	2000	C	A	Start
func NewReader(r io.Reader) (*Reader, error) {
	src := &tailReader{r: r}
	tsv := csv.NewReader(src)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	state := -1
	var names []string
	var cols []int
	for i, h := range head {
		h = strings.TrimSpace(h)
		if strings.ToLower(h) == "state" {
			if state >= 0 {
				return nil, fmt.Errorf("header: repeated field %q", h)
			}
			state = i
			continue
		}
		n, ok := strings.CutSuffix(h, Suffix)
		if !ok {
			return nil, fmt.Errorf("header: field %q: expecting suffix %q", h, Suffix)
		}
		names = append(names, n)
		cols = append(cols, i)
	}
	if state < 0 {
		return nil, fmt.Errorf("header: expecting field %q", "state")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("header: expecting node fields")
	}

	reg, err := node.New(names...)
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}

	return &Reader{
		tsv:   tsv,
		src:   src,
		reg:   reg,
		state: state,
		cols:  cols,
	}, nil
}

// Nodes returns the nodes defined in the trace header.
func (r *Reader) Nodes() *node.Registry {
	return r.reg
}

// Read reads the next sample from the trace.
// At the end of the trace it returns io.EOF.
// A truncated last row
// (i.e., a row with less fields than the header,
// or a row with an invalid last field
// that is not ended by a newline)
// is taken as the end of the trace.
func (r *Reader) Read() (Row, error) {
	if r.done {
		return Row{}, io.EOF
	}

	row, err := r.tsv.Read()
	if errors.Is(err, io.EOF) {
		r.done = true
		return Row{}, io.EOF
	}
	ln, _ := r.tsv.FieldPos(0)
	if err != nil {
		return Row{}, fmt.Errorf("on row %d: %v", ln, err)
	}

	s, err := r.parse(row)
	if err != nil {
		// only the last row can be truncated
		if r.truncated(len(row) < len(r.cols)+1) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("on row %d: %v", ln, err)
	}
	r.line++

	return Row{
		Sample: s,
		Line:   r.line,
	}, nil
}

func (r *Reader) parse(row []string) (network.Sample, error) {
	if len(row) < len(r.cols)+1 {
		return network.Sample{}, fmt.Errorf("got %d fields, want %d", len(row), len(r.cols)+1)
	}

	f := "state"
	st, err := strconv.ParseInt(strings.TrimSpace(row[r.state]), 10, 64)
	if err != nil {
		return network.Sample{}, fmt.Errorf("field %q: %v", f, err)
	}

	parents := make([]string, len(r.cols))
	for i, c := range r.cols {
		parents[i] = row[c]
	}
	return network.New(r.reg, st, parents)
}

// truncated returns true if the last read row
// is the last row of the trace,
// and it was cut while being written.
// A short row is always truncated;
// other invalid rows are truncated
// only if the trace does not end with a newline.
func (r *Reader) truncated(short bool) bool {
	if _, err := r.tsv.Read(); !errors.Is(err, io.EOF) {
		return false
	}
	r.done = true
	return short || r.src.last != '\n'
}

// A tailReader keeps the last byte read.
type tailReader struct {
	r    io.Reader
	last byte
}

func (t *tailReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.last = p[n-1]
	}
	return n, err
}
