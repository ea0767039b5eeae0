// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus

import (
	"math"

	"github.com/mdhall272/beastlier/network"
)

// A Tracker keeps the network with the maximum score
// found in a sequence of networks.
// If two networks have the same score,
// the first one is kept.
type Tracker struct {
	best   float64
	sample network.Sample
	found  bool
}

// NewTracker returns a tracker for a rule.
// A multiplicative tracker starts at -Inf,
// and an additive tracker starts at 0.
func NewTracker(r Rule) *Tracker {
	t := &Tracker{}
	if r == Multiplicative {
		t.best = math.Inf(-1)
	}
	return t
}

// Update sets a network as the best network
// if its score is strictly greater than the current maximum.
// It returns true if the network is the new best network.
func (t *Tracker) Update(s network.Sample, v float64) bool {
	if !(v > t.best) {
		return false
	}
	t.best = v
	t.sample = s
	t.found = true
	return true
}

// Best returns the best network,
// and its score.
// If no network has a score greater than the initial value,
// it returns false.
func (t *Tracker) Best() (network.Sample, float64, bool) {
	return t.sample, t.best, t.found
}
