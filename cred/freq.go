// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cred

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// Freq is a frequency table
// of the values realized by a node
// in a set of samples.
type Freq[K comparable] struct {
	count map[K]int
	order []K
	total int
}

// NewFreq returns an empty frequency table.
func NewFreq[K comparable]() *Freq[K] {
	return &Freq[K]{
		count: make(map[K]int),
	}
}

// Add adds an observation of a value.
func (f *Freq[K]) Add(v K) {
	f.AddN(v, 1)
}

// AddN adds n observations of a value.
func (f *Freq[K]) AddN(v K, n int) {
	if n <= 0 {
		return
	}
	if _, ok := f.count[v]; !ok {
		f.order = append(f.order, v)
	}
	f.count[v] += n
	f.total += n
}

// Count returns the number of observations of a value.
func (f *Freq[K]) Count(v K) int {
	return f.count[v]
}

// Len returns the number of distinct observed values.
func (f *Freq[K]) Len() int {
	return len(f.order)
}

// Merge adds the observations of another table.
func (f *Freq[K]) Merge(o *Freq[K]) {
	for _, v := range o.order {
		f.AddN(v, o.count[v])
	}
}

// Ranked returns the observed values
// sorted from the most to the least frequent.
// Values with the same frequency
// are in the order in which they were first observed.
func (f *Freq[K]) Ranked() []K {
	r := f.Values()
	slices.SortStableFunc(r, func(a, b K) int {
		return cmp.Compare(f.count[b], f.count[a])
	})
	return r
}

// Total returns the total number of observations.
func (f *Freq[K]) Total() int {
	return f.total
}

// Values returns the observed values
// in the order in which they were first observed.
func (f *Freq[K]) Values() []K {
	v := make([]K, len(f.order))
	copy(v, f.order)
	return v
}
