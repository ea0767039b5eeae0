// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus

import (
	"math"
	"slices"

	"github.com/mdhall272/beastlier/cred"
	"github.com/mdhall272/beastlier/network"
	"gonum.org/v1/gonum/stat"
)

// An Event is produced when a network
// becomes the best network
// for a rule and a kind.
type Event struct {
	State int64
	Rule  Rule
	Kind  Kind
	Value float64
}

// A Selector scans a sequence of networks
// and keeps the best network
// for each combination of rule and kind.
type Selector struct {
	sc       *Scorer
	trackers [2][3]*Tracker

	states     []int64
	values     [2][3][]float64
	unobserved int
}

// NewSelector returns a selector
// that scores networks
// using the frequency tables of an aggregator.
func NewSelector(a *cred.Aggregator) *Selector {
	s := &Selector{
		sc: NewScorer(a),
	}
	for _, r := range Rules {
		for _, k := range Kinds {
			s.trackers[r][k] = NewTracker(r)
		}
	}
	return s
}

// Add scores a network
// and updates the best networks.
// It returns the events of the updated best networks.
func (s *Selector) Add(smp network.Sample) ([]Event, error) {
	scores, err := s.sc.Scores(smp)
	if err != nil {
		return nil, err
	}

	s.states = append(s.states, smp.State)
	var events []Event
	for _, k := range Kinds {
		s.unobserved += scores[k].Unobserved
		for _, r := range Rules {
			v := scores[k].Value(r)
			s.values[r][k] = append(s.values[r][k], v)
			if !s.trackers[r][k].Update(smp, v) {
				continue
			}
			events = append(events, Event{
				State: smp.State,
				Rule:  r,
				Kind:  k,
				Value: v,
			})
		}
	}
	return events, nil
}

// Best returns the best network
// for a rule and kind.
func (s *Selector) Best(r Rule, k Kind) (network.Sample, float64, bool) {
	return s.trackers[r][k].Best()
}

// Len returns the number of scanned networks.
func (s *Selector) Len() int {
	return len(s.states)
}

// Trace returns the state index
// and the score of each scanned network
// for a rule and kind.
func (s *Selector) Trace(r Rule, k Kind) ([]int64, []float64) {
	return slices.Clone(s.states), slices.Clone(s.values[r][k])
}

// Unobserved returns the number of node values
// never observed in the frequency tables
// found in the scanned networks.
func (s *Selector) Unobserved() int {
	return s.unobserved
}

// Summary is a summary of the scores
// of the scanned networks.
type Summary struct {
	Mean   float64
	Lower  float64 // 2.5% quantile
	Median float64
	Upper  float64 // 97.5% quantile
}

// Summary returns the summary of the scores
// of the scanned networks
// for a rule and kind.
// Networks with an infinite score are ignored.
func (s *Selector) Summary(r Rule, k Kind) Summary {
	v := make([]float64, 0, len(s.values[r][k]))
	for _, x := range s.values[r][k] {
		if math.IsInf(x, 0) {
			continue
		}
		v = append(v, x)
	}
	if len(v) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Lower: nan, Median: nan, Upper: nan}
	}
	slices.Sort(v)

	return Summary{
		Mean:   stat.Mean(v, nil),
		Lower:  stat.Quantile(0.025, stat.Empirical, v, nil),
		Median: stat.Quantile(0.5, stat.Empirical, v, nil),
		Upper:  stat.Quantile(0.975, stat.Empirical, v, nil),
	}
}
