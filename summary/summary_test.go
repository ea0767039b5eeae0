// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package summary_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/summary"
	"github.com/mdhall272/beastlier/trace"
)

// In the retained samples
// (state > 500)
// the parent of A is Start in 6 samples,
// and B in 4 samples.
var traceData = `# network log
state	A_infector	B_infector	C_infector
0	C	Start	B
1000	Start	C	Start
2000	B	C	Start
3000	Start	C	Start
4000	B	C	Start
5000	Start	C	Start
6000	Start	C	Start
7000	B	C	Start
8000	Start	C	Start
9000	B	C	Start
10000	Start	C	Start
`

func TestSummary(t *testing.T) {
	s, err := summary.New(strings.NewReader(traceData), summary.Options{
		Burnin: trace.Burnin{Value: 500, InStates: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Rows != 11 {
		t.Errorf("rows: got %d, want %d", s.Rows, 11)
	}
	if s.Agg.Samples() != 10 {
		t.Errorf("samples: got %d, want %d", s.Agg.Samples(), 10)
	}
	if p := s.Agg.ParentProb(0, "Start"); math.Abs(p-0.6) > 1e-12 {
		t.Errorf("probability A<-Start: got %.6f, want %.6f", p, 0.6)
	}

	assign, err := s.Assignments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{"MPC", "MSPC", "MDSC", "MSDSC", "MSMC", "MSSMC", summary.MarginalParent, summary.MarginalDescendant}
	var got []string
	for _, as := range assign {
		got = append(got, as.Name)
	}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("assignments: got %v, want %v", got, names)
	}

	// the first network with A<-Start is the best network
	for _, as := range assign[:6] {
		smp, ok := as.Sample()
		if !ok {
			t.Fatalf("%s: expecting a network", as.Name)
		}
		if smp.State != 1000 {
			t.Errorf("%s: state: got %d, want %d", as.Name, smp.State, 1000)
		}
	}
	if v := assign[6].Value(0); v != "Start" {
		t.Errorf("marginal parent of A: got %q, want %q", v, "Start")
	}

	if len(s.Events) != 6 {
		t.Errorf("events: got %d, want %d", len(s.Events), 6)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s, err := summary.New(strings.NewReader(traceData), summary.Options{
		Burnin: trace.Burnin{Value: 100},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Agg.Samples() != 0 {
		t.Errorf("samples: got %d, want %d", s.Agg.Samples(), 0)
	}
	assign, err := s.Assignments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assign) != 0 {
		t.Errorf("assignments: got %d, want %d", len(assign), 0)
	}
	if _, _, ok := s.Sel.Best(consensus.Multiplicative, consensus.Parent); ok {
		t.Errorf("empty trace with a best network")
	}
}

func TestSummaryCycle(t *testing.T) {
	data := traceData + "11000\tB\tA\tStart\n"

	_, err := summary.New(strings.NewReader(data), summary.Options{})
	if !errors.Is(err, network.ErrCycle) {
		t.Fatalf("got error %v, want %v", err, network.ErrCycle)
	}

	s, err := summary.New(strings.NewReader(data), summary.Options{Skip: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Skipped) != 1 {
		t.Fatalf("skipped: got %d, want %d", len(s.Skipped), 1)
	}
	if !errors.Is(s.Skipped[0], network.ErrCycle) {
		t.Errorf("skipped: got error %v, want %v", s.Skipped[0], network.ErrCycle)
	}
	if s.Agg.Samples() != 11 {
		t.Errorf("samples: got %d, want %d", s.Agg.Samples(), 11)
	}
}
