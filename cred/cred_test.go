// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cred_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

func newSamples(t testing.TB, names []string, parents [][]string) []network.Sample {
	t.Helper()

	reg, err := node.New(names...)
	if err != nil {
		t.Fatalf("unable to build registry: %v", err)
	}
	samples := make([]network.Sample, 0, len(parents))
	for i, p := range parents {
		s, err := network.New(reg, int64(i*1000), p)
		if err != nil {
			t.Fatalf("unable to build sample %d: %v", i, err)
		}
		samples = append(samples, s)
	}
	return samples
}

func accumulate(t testing.TB, samples []network.Sample) *cred.Aggregator {
	t.Helper()

	a := cred.New(samples[0].Registry())
	for _, s := range samples {
		if err := a.Accumulate(s); err != nil {
			t.Fatalf("state %d: unexpected error: %v", s.State, err)
		}
	}
	return a
}

// alternating returns a trace
// in which the parent of A
// is Start in 6 samples,
// and B in 4 samples.
func alternating(t testing.TB) []network.Sample {
	t.Helper()

	var parents [][]string
	for i := range 10 {
		pa := "Start"
		if i%5 == 1 || i%5 == 3 {
			pa = "B"
		}
		parents = append(parents, []string{pa, "C", "Start"})
	}
	return newSamples(t, []string{"A", "B", "C"}, parents)
}

func TestSingleParent(t *testing.T) {
	var parents [][]string
	for range 5 {
		parents = append(parents, []string{"Start", "A"})
	}
	a := accumulate(t, newSamples(t, []string{"A", "B"}, parents))

	if p := a.ParentProb(1, "A"); p != 1 {
		t.Errorf("probability B<-A: got %.6f, want %.6f", p, 1.0)
	}
	if p := math.Log(a.ParentProb(1, "A")); p != 0 {
		t.Errorf("log probability B<-A: got %.6f, want %.6f", p, 0.0)
	}
	if p := a.ParentProb(1, "Start"); p != 0 {
		t.Errorf("probability B<-Start: got %.6f, want %.6f", p, 0.0)
	}

	d := network.NewSet("B")
	if p := a.DescProb(0, d); p != 1 {
		t.Errorf("probability desc(A) = %v: got %.6f, want %.6f", d, p, 1.0)
	}
	m := network.NewSet("A", "B")
	if p := a.MemberProb(m); p != 1 {
		t.Errorf("probability members %v: got %.6f, want %.6f", m, p, 1.0)
	}
}

func TestAlternating(t *testing.T) {
	a := accumulate(t, alternating(t))

	if a.Samples() != 10 {
		t.Errorf("samples: got %d, want %d", a.Samples(), 10)
	}

	f := a.Parents(0)
	freq := map[string]int{
		"Start": f.Count("Start"),
		"B":     f.Count("B"),
	}
	want := map[string]int{"Start": 6, "B": 4}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("frequency of A parents: got %v, want %v", freq, want)
	}
	if p := a.ParentProb(0, "Start"); math.Abs(p-0.6) > 1e-12 {
		t.Errorf("probability A<-Start: got %.6f, want %.6f", p, 0.6)
	}
	if p := a.ParentProb(0, "start"); math.Abs(p-0.6) > 1e-12 {
		t.Errorf("probability A<-start: got %.6f, want %.6f", p, 0.6)
	}

	ranked := []string{"Start", "B"}
	if got := f.Ranked(); !reflect.DeepEqual(got, ranked) {
		t.Errorf("ranked parents of A: got %v, want %v", got, ranked)
	}

	// descendant sets of C
	d := a.Descendants(2)
	all := network.NewSet("A", "B")
	if c := d.Count(all); c != 4 {
		t.Errorf("count desc(C) = %v: got %d, want %d", all, c, 4)
	}
	if c := d.Count(network.NewSet("B")); c != 6 {
		t.Errorf("count desc(C) = {B}: got %d, want %d", c, 6)
	}
}

func TestCompleteness(t *testing.T) {
	a := accumulate(t, alternating(t))

	for i := range a.Nodes().Len() {
		if tot := sum(a.Parents(i)); tot != a.Samples() {
			t.Errorf("node %d: parent counts: got %d, want %d", i, tot, a.Samples())
		}
		if tot := sum(a.Descendants(i)); tot != a.Samples() {
			t.Errorf("node %d: descendant counts: got %d, want %d", i, tot, a.Samples())
		}
	}

	// one subtree-membership set per node and sample
	want := a.Samples() * a.Nodes().Len()
	if tot := sum(a.Members()); tot != want {
		t.Errorf("subtree counts: got %d, want %d", tot, want)
	}
}

func sum[K comparable](f *cred.Freq[K]) int {
	var s int
	for _, v := range f.Values() {
		s += f.Count(v)
	}
	if s != f.Total() {
		return -1
	}
	return s
}

func TestEmpty(t *testing.T) {
	reg, _ := node.New("A", "B")
	a := cred.New(reg)

	if a.Samples() != 0 {
		t.Errorf("samples: got %d, want %d", a.Samples(), 0)
	}
	if p := a.ParentProb(1, "A"); p != 0 {
		t.Errorf("probability on empty aggregator: got %.6f, want %.6f", p, 0.0)
	}
	if p := a.MemberProb(network.NewSet("A")); p != 0 {
		t.Errorf("probability on empty aggregator: got %.6f, want %.6f", p, 0.0)
	}
}

func TestCyclicSample(t *testing.T) {
	samples := newSamples(t, []string{"A", "B"}, [][]string{
		{"Start", "A"},
		{"B", "A"},
	})
	a := cred.New(samples[0].Registry())
	if err := a.Accumulate(samples[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Accumulate(samples[1]); !errors.Is(err, network.ErrCycle) {
		t.Fatalf("got error %v, want %v", err, network.ErrCycle)
	}
	if a.Samples() != 1 {
		t.Errorf("samples: got %d, want %d", a.Samples(), 1)
	}
	if a.Parents(0).Total() != 1 {
		t.Errorf("cyclic sample modified the tables")
	}
}

func TestMerge(t *testing.T) {
	samples := alternating(t)
	whole := accumulate(t, samples)

	first := accumulate(t, samples[:3])
	second := accumulate(t, samples[3:])
	if err := second.Merge(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Samples() != whole.Samples() {
		t.Errorf("samples: got %d, want %d", second.Samples(), whole.Samples())
	}
	for i := range whole.Nodes().Len() {
		for _, p := range whole.Parents(i).Values() {
			if got, want := second.ParentProb(i, p), whole.ParentProb(i, p); got != want {
				t.Errorf("node %d: parent %q: got %.6f, want %.6f", i, p, got, want)
			}
		}
		for _, d := range whole.Descendants(i).Values() {
			if got, want := second.DescProb(i, d), whole.DescProb(i, d); got != want {
				t.Errorf("node %d: desc %v: got %.6f, want %.6f", i, d, got, want)
			}
		}
	}
	for _, m := range whole.Members().Values() {
		if got, want := second.MemberProb(m), whole.MemberProb(m); got != want {
			t.Errorf("members %v: got %.6f, want %.6f", m, got, want)
		}
	}

	other, _ := node.New("X", "Y")
	if err := whole.Merge(cred.New(other)); err == nil {
		t.Errorf("merge with different nodes: expecting error")
	}
}

func TestWriteTSV(t *testing.T) {
	a := accumulate(t, alternating(t))

	var w bytes.Buffer
	if err := a.WriteTSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	out := w.String()
	for _, ln := range []string{
		"kind\tnode\tvalue\tcount\tfreq\r\n",
		"parent\tA\tStart\t6\t0.600000\r\n",
		"parent\tA\tB\t4\t0.400000\r\n",
		"desc\tC\t{B}\t6\t0.600000\r\n",
		"subtree\t\t{A}\t10\t1.000000\r\n",
		"subtree\t\t{B, C}\t6\t0.600000\r\n",
		"subtree\t\t{A, B, C}\t4\t0.400000\r\n",
	} {
		if !strings.Contains(out, ln) {
			t.Errorf("output: expecting line %q", ln)
		}
	}
}
