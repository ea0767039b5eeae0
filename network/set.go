// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"slices"
	"strings"
)

// Node names are read from tab-delimited files,
// so they never include a tab.
const sep = "\t"

// A Set is an immutable set of node names.
// Two sets with the same members are equal,
// so a Set can be used as a map key.
type Set struct {
	key string
}

// NewSet returns a set with the given names.
func NewSet(names ...string) Set {
	if len(names) == 0 {
		return Set{}
	}
	ns := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		ns = append(ns, n)
	}
	slices.Sort(ns)
	ns = slices.Compact(ns)
	return Set{key: strings.Join(ns, sep)}
}

// ParseSet returns a set
// from a string in the form
// produced by the String method.
func ParseSet(s string) (Set, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return Set{}, fmt.Errorf("invalid set %q", s)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return Set{}, nil
	}
	var names []string
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			return Set{}, fmt.Errorf("invalid set %q: empty name", s)
		}
		names = append(names, n)
	}
	return NewSet(names...), nil
}

// Has returns true if name is a member of the set.
func (s Set) Has(name string) bool {
	_, ok := slices.BinarySearch(s.Members(), name)
	return ok
}

// Key returns the canonical key of the set.
func (s Set) Key() string {
	return s.key
}

// Len returns the number of members of the set.
func (s Set) Len() int {
	if s.key == "" {
		return 0
	}
	return strings.Count(s.key, sep) + 1
}

// Members returns the sorted members of the set.
func (s Set) Members() []string {
	if s.key == "" {
		return nil
	}
	return strings.Split(s.key, sep)
}

// String returns the set as a list of names
// between braces,
// for example "{A, B}".
func (s Set) String() string {
	return "{" + strings.Join(s.Members(), ", ") + "}"
}

// With returns a new set
// that includes the given name.
func (s Set) With(name string) Set {
	return NewSet(append(s.Members(), name)...)
}
