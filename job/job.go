// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package job implements reading and writing
// of batch job files.
//
// A job file is a tab-delimited file (TSV)
// used to store the input and output files
// of a set of runs
// (usually, the analysis of simulated outbreaks).
package job

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// A Run is a single analysis in a job.
type Run struct {
	// ID is the identifier of the run.
	ID string

	// Trace is the path of the network trace.
	Trace string

	// Truth is the path of the true network.
	// It can be empty.
	Truth string

	// Output is the prefix of the output files.
	Output string
}

// A Job is a collection of runs.
type Job struct {
	name string
	runs map[string]Run
}

// New creates a new empty job.
func New() *Job {
	return &Job{
		runs: make(map[string]Run),
	}
}

var header = []string{
	"id",
	"trace",
	"truth",
	"output",
}

// Read reads a job file.
//
// The TSV must contain the following fields:
//
//   - id, the identifier of the run
//   - trace, the path of the network trace
//   - truth, the path of the true network
//   - output, the prefix of the output files
//
// Here is an example file:
//
//	# batch job
//	id	trace	truth	output
//	1_1_1	pTree_G_1_1_1.net.txt	network_G_1_1_1.csv	out/run_1_1_1
//	1_1_2	pTree_G_1_1_2.net.txt	network_G_1_1_2.csv	out/run_1_1_2
func Read(name string) (*Job, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	j, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	j.name = name
	return j, nil
}

// ReadTSV reads a job from a TSV stream.
func ReadTSV(r io.Reader) (*Job, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	j := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		r := Run{
			ID:     strings.TrimSpace(row[fields["id"]]),
			Trace:  strings.TrimSpace(row[fields["trace"]]),
			Truth:  strings.TrimSpace(row[fields["truth"]]),
			Output: strings.TrimSpace(row[fields["output"]]),
		}
		if err := j.Add(r); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return j, nil
}

// Add adds a run to a job.
// If the output prefix is not defined,
// the run identifier is used.
func (j *Job) Add(r Run) error {
	if r.ID == "" {
		return errors.New("empty run identifier")
	}
	if r.Trace == "" {
		return fmt.Errorf("run %q: undefined trace", r.ID)
	}
	if _, dup := j.runs[r.ID]; dup {
		return fmt.Errorf("run %q: repeated run", r.ID)
	}
	if r.Output == "" {
		r.Output = r.ID
	}
	j.runs[r.ID] = r
	return nil
}

// Run returns a run by its identifier.
func (j *Job) Run(id string) (Run, bool) {
	r, ok := j.runs[id]
	return r, ok
}

// Runs returns the runs of a job,
// sorted by identifier.
func (j *Job) Runs() []Run {
	runs := make([]Run, 0, len(j.runs))
	for _, r := range j.runs {
		runs = append(runs, r)
	}
	slices.SortFunc(runs, func(a, b Run) int {
		return strings.Compare(a.ID, b.ID)
	})
	return runs
}

// SetName sets the job file name.
func (j *Job) SetName(name string) {
	j.name = name
}

// Write writes a job into a file.
func (j *Job) Write() (err error) {
	f, err := os.Create(j.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# batch job\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", j.name, err)
	}

	for _, r := range j.Runs() {
		row := []string{
			r.ID,
			r.Trace,
			r.Truth,
			r.Output,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", j.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", j.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", j.name, err)
	}
	return nil
}
