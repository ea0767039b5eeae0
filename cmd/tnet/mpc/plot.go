// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mpc

import (
	"math"

	"github.com/js-arias/blind"
	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/summary"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// tracePlot plots the score of each sampled network
// for each kind of value.
// Networks with an infinite score are not plotted.
func tracePlot(name string, s *summary.Summary, r consensus.Rule) error {
	p := plot.New()
	p.X.Label.Text = "state"
	p.Y.Label.Text = "credibility"
	if r == consensus.Multiplicative {
		p.Y.Label.Text = "log credibility"
	}
	p.Legend.Top = true

	for i, k := range consensus.Kinds {
		states, scores := s.Sel.Trace(r, k)
		xys := make(plotter.XYs, 0, len(states))
		for j, st := range states {
			if math.IsInf(scores[j], 0) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(st), Y: scores[j]})
		}
		if len(xys) == 0 {
			continue
		}

		ln, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		ln.LineStyle.Width = vg.Points(1)
		ln.LineStyle.Color = blind.Sequential(blind.Iridescent, float64(i)/float64(len(consensus.Kinds)-1))
		p.Add(ln)
		p.Legend.Add(consensus.Name(r, k), ln)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
