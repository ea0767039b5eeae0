// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package accuracy

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mdhall272/beastlier/consensus"
)

// WriteDetail writes a detail report
// as a plain text file.
//
// For each node,
// it lists the observed values,
// from the most to the least frequent,
// with the true value marked with asterisks.
//
// Here is an example of a node entry:
//
//	Node farm2 (correct: farm1)
//	**farm1** : 6 (60.0%)
//	farm3: 4 (40.0%)
//	Total: 10
//	Guessed correctly: farm1 (60.0%)
func (d Detail) WriteDetail(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, nd := range d.Nodes {
		fmt.Fprintf(bw, "Node %s (correct: %s)\n", nd.Node, nd.Truth)
		for _, c := range nd.Candidates {
			if c.True {
				fmt.Fprintf(bw, "**%s** : %d (%.1f%%)\n", c.Value, c.Count, c.Prob*100)
				continue
			}
			fmt.Fprintf(bw, "%s: %d (%.1f%%)\n", c.Value, c.Count, c.Prob*100)
		}
		fmt.Fprintf(bw, "Total: %d\n", nd.Total)
		if nd.Correct {
			fmt.Fprintf(bw, "Guessed correctly: %s (%.1f%%)\n", nd.Best.Value, nd.Best.Prob*100)
		} else {
			fmt.Fprintf(bw, "Guessed incorrectly: %s (%.1f%%)\n", nd.Best.Value, nd.Best.Prob*100)
			for _, c := range nd.Candidates {
				if c.True {
					fmt.Fprintf(bw, "Correct guess: %s (%.1f%%)\n", c.Value, c.Prob*100)
				}
			}
		}
		fmt.Fprintf(bw, "\n")
	}

	what := "nodes"
	if d.Kind == consensus.Descendant {
		what = "descendant sets"
	}
	fmt.Fprintf(bw, "Correctly guessed %s: %d (%.1f%%)\n", what, d.Correct, d.Proportion()*100)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing detail: %v", err)
	}
	return nil
}

// AppendBrief writes a brief CSV report
// with a line for each node,
// with the identifier of the run,
// the credibility of the most frequent value,
// and TRUE if the most frequent value is the true value,
// or FALSE otherwise.
//
// The brief report is expected to be appended
// to an existing file.
func (d Detail) AppendBrief(w io.Writer, id string) error {
	tab := csv.NewWriter(w)
	for _, nd := range d.Nodes {
		ok := "FALSE"
		if nd.Correct {
			ok = "TRUE"
		}
		row := []string{
			id,
			strconv.FormatFloat(nd.Best.Prob, 'f', -1, 64),
			ok,
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing brief: %v", err)
		}
	}
	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing brief: %v", err)
	}
	return nil
}

// WriteCSV writes a set of assignments as a CSV file.
// Each row is a node,
// with the value and credibility
// of each assignment.
// If the true network is defined,
// the true parent of each node is added,
// and a last row with the number of correct nodes
// of each assignment.
func WriteCSV(w io.Writer, assign []consensus.Assignment, t *Truth) error {
	if len(assign) == 0 {
		return nil
	}
	reg := assign[0].Nodes()

	var results []Result
	if t != nil {
		for _, as := range assign {
			r, err := Score(as, t)
			if err != nil {
				return fmt.Errorf("assignment %q: %v", as.Name, err)
			}
			results = append(results, r)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# maximum credibility transmission networks\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tab := csv.NewWriter(bw)
	tab.UseCRLF = true

	header := []string{"node"}
	if t != nil {
		header = append(header, "truth")
	}
	for _, as := range assign {
		header = append(header, as.Name, as.Name+" credibility")
	}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i := range reg.Len() {
		row := []string{reg.Name(i)}
		if t != nil {
			p, _ := t.Parent(reg.Name(i))
			row = append(row, p)
		}
		for _, as := range assign {
			row = append(row, as.Value(i), strconv.FormatFloat(as.Prob(i), 'f', 6, 64))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	if t != nil {
		row := []string{"correct", ""}
		for _, r := range results {
			row = append(row, fmt.Sprintf("%d/%d", r.Correct, r.Total), strconv.FormatFloat(r.Proportion(), 'f', 6, 64))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Summary returns a one-line summary of a result,
// for example
// "MPC: correct in 4 out of 5 cases (80.0%)".
func (r Result) Summary() string {
	return fmt.Sprintf("%s: correct in %d out of %d cases (%.1f%%)", r.Name, r.Correct, r.Total, r.Proportion()*100)
}
