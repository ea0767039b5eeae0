// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package network_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mdhall272/beastlier/network"
	"github.com/mdhall272/beastlier/node"
)

// Network:
//
//	Start -> A -> B -> D
//	          \-> C
//	Start -> E
func newSample(t testing.TB) network.Sample {
	t.Helper()

	reg, err := node.New("A", "B", "C", "D", "E")
	if err != nil {
		t.Fatalf("unable to build registry: %v", err)
	}
	s, err := network.New(reg, 10, []string{"start", "A", "A", "B", "Start"})
	if err != nil {
		t.Fatalf("unable to build sample: %v", err)
	}
	return s
}

func TestSample(t *testing.T) {
	s := newSample(t)

	if s.State != 10 {
		t.Errorf("state: got %d, want %d", s.State, 10)
	}
	parents := []string{"Start", "A", "A", "B", "Start"}
	for i, p := range parents {
		if got := s.ParentName(i); got != p {
			t.Errorf("node %d: parent: got %q, want %q", i, got, p)
		}
	}
	if s.Parent(0) != network.RootIndex {
		t.Errorf("node A: parent index: got %d, want %d", s.Parent(0), network.RootIndex)
	}
	if err := s.Check(); err != nil {
		t.Errorf("check: unexpected error: %v", err)
	}
}

func TestSampleErrors(t *testing.T) {
	reg, _ := node.New("A", "B")
	if _, err := network.New(reg, 1, []string{"Start"}); err == nil {
		t.Errorf("short sample: expecting error")
	}
	if _, err := network.New(reg, 1, []string{"Start", "Z"}); err == nil {
		t.Errorf("unknown parent: expecting error")
	}
}

func TestDescendants(t *testing.T) {
	s := newSample(t)

	tests := map[string]struct {
		desc    []string
		members []string
	}{
		"A": {desc: []string{"B", "C", "D"}, members: []string{"A", "B", "C", "D"}},
		"B": {desc: []string{"D"}, members: []string{"B", "D"}},
		"C": {members: []string{"C"}},
		"D": {members: []string{"D"}},
		"E": {members: []string{"E"}},
	}

	reg := s.Registry()
	for name, test := range tests {
		i, _ := reg.Index(name)
		desc, err := s.Descendants(i)
		if err != nil {
			t.Fatalf("%s: descendants: unexpected error: %v", name, err)
		}
		if got := desc.Members(); !reflect.DeepEqual(got, test.desc) {
			t.Errorf("%s: descendants: got %v, want %v", name, got, test.desc)
		}
		mem, err := s.Members(i)
		if err != nil {
			t.Fatalf("%s: members: unexpected error: %v", name, err)
		}
		if got := mem.Members(); !reflect.DeepEqual(got, test.members) {
			t.Errorf("%s: members: got %v, want %v", name, got, test.members)
		}

		// members are the descendants plus the target
		if desc.Has(name) {
			t.Errorf("%s: target in its own descendant set", name)
		}
		if mem != desc.With(name) {
			t.Errorf("%s: members %v != descendants %v plus target", name, mem, desc)
		}
		if mem.Len() != desc.Len()+1 {
			t.Errorf("%s: members size %d, descendants size %d", name, mem.Len(), desc.Len())
		}
	}
}

func TestCycle(t *testing.T) {
	reg, _ := node.New("A", "B", "C")
	s, err := network.New(reg, 5, []string{"B", "A", "Start"})
	if err != nil {
		t.Fatalf("unable to build sample: %v", err)
	}

	if err := s.Check(); !errors.Is(err, network.ErrCycle) {
		t.Errorf("check: got error %v, want %v", err, network.ErrCycle)
	}
	c, _ := reg.Index("C")
	if _, err := s.Descendants(c); !errors.Is(err, network.ErrCycle) {
		t.Errorf("descendants: got error %v, want %v", err, network.ErrCycle)
	}
}

func TestSet(t *testing.T) {
	a := network.NewSet("C", "A", "B", "A")
	b := network.NewSet("B", "C", "A")
	if a != b {
		t.Errorf("sets %v and %v should be equal", a, b)
	}
	if a.Len() != 3 {
		t.Errorf("len: got %d, want %d", a.Len(), 3)
	}
	if s := a.String(); s != "{A, B, C}" {
		t.Errorf("string: got %q, want %q", s, "{A, B, C}")
	}
	if !a.Has("B") || a.Has("D") {
		t.Errorf("has: unexpected membership on %v", a)
	}

	p, err := network.ParseSet(a.String())
	if err != nil {
		t.Fatalf("parse: unexpected error: %v", err)
	}
	if p != a {
		t.Errorf("parse: got %v, want %v", p, a)
	}

	var empty network.Set
	if empty.Len() != 0 || empty.String() != "{}" {
		t.Errorf("empty set: got %v (len %d)", empty, empty.Len())
	}
	if p, err := network.ParseSet("{}"); err != nil || p != empty {
		t.Errorf("parse empty: got %v, %v", p, err)
	}
	if _, err := network.ParseSet("A, B"); err == nil {
		t.Errorf("parse without braces: expecting error")
	}

	m := map[network.Set]int{a: 1}
	m[b]++
	if m[a] != 2 {
		t.Errorf("map key: got %d, want %d", m[a], 2)
	}
}
