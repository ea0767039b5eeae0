// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package node_test

import (
	"reflect"
	"testing"

	"github.com/mdhall272/beastlier/node"
)

func TestRegistry(t *testing.T) {
	r, err := node.New("A", " B", "C ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Len() != 3 {
		t.Errorf("len: got %d, want %d", r.Len(), 3)
	}
	names := []string{"A", "B", "C"}
	if got := r.Names(); !reflect.DeepEqual(got, names) {
		t.Errorf("names: got %v, want %v", got, names)
	}
	for i, n := range names {
		if got := r.Name(i); got != n {
			t.Errorf("name %d: got %q, want %q", i, got, n)
		}
		if got, ok := r.Index(n); !ok || got != i {
			t.Errorf("index %q: got %d, want %d", n, got, i)
		}
	}
	if _, ok := r.Index(node.Root); ok {
		t.Errorf("index %q: root should not be a node", node.Root)
	}

	last := []string{"A", "B", "C", "Start"}
	if got := r.Candidates(false); !reflect.DeepEqual(got, last) {
		t.Errorf("candidates: got %v, want %v", got, last)
	}
	first := []string{"Start", "A", "B", "C"}
	if got := r.Candidates(true); !reflect.DeepEqual(got, first) {
		t.Errorf("candidates: got %v, want %v", got, first)
	}
}

func TestRegistryErrors(t *testing.T) {
	tests := map[string][]string{
		"empty":    {"A", ""},
		"repeated": {"A", "B", "A"},
		"root":     {"A", "start"},
	}
	for name, test := range tests {
		if _, err := node.New(test...); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestCanon(t *testing.T) {
	tests := map[string]string{
		"start":  "Start",
		"START ": "Start",
		"Start":  "Start",
		" farm1": "farm1",
	}
	for in, want := range tests {
		if got := node.Canon(in); got != want {
			t.Errorf("canon %q: got %q, want %q", in, got, want)
		}
	}
}
