// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cred

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Kinds of frequency tables
// used in the TSV output.
const (
	KindParent     = "parent"
	KindDescendant = "desc"
	KindMember     = "subtree"
)

// WriteTSV writes the frequency tables
// as a TSV file.
//
// The TSV file contains the following fields:
//
//   - kind, the kind of table ("parent", "desc", or "subtree")
//   - node, the node name
//     (empty for subtree-membership sets)
//   - value, the observed value
//   - count, the number of samples with the value
//   - freq, the credibility of the value
//
// Values of each table are sorted from the most to the least frequent.
func (a *Aggregator) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# credibility of sampled transmission networks\n")
	fmt.Fprintf(bw, "# samples: %d\n", a.samples)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := []string{
		"kind",
		"node",
		"value",
		"count",
		"freq",
	}
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, f := range a.parents {
		n := a.reg.Name(i)
		for _, p := range f.Ranked() {
			c := f.Count(p)
			if err := tsv.Write(a.row(KindParent, n, p, c)); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}
	for i, f := range a.desc {
		n := a.reg.Name(i)
		for _, d := range f.Ranked() {
			c := f.Count(d)
			if err := tsv.Write(a.row(KindDescendant, n, d.String(), c)); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}
	for _, m := range a.members.Ranked() {
		c := a.members.Count(m)
		if err := tsv.Write(a.row(KindMember, "", m.String(), c)); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func (a *Aggregator) row(kind, n, v string, count int) []string {
	return []string{
		kind,
		n,
		v,
		strconv.Itoa(count),
		strconv.FormatFloat(a.prob(count), 'f', 6, 64),
	}
}
