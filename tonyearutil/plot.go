/*
Copyright © 2021 the tonyear authors.
This file is part of tonyear.

tonyear is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tonyear is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tonyear.  If not, see <http://www.gnu.org/licenses/>.
*/

package tonyearutil

import (
	"fmt"
	"image/color"

	"github.com/spatialmodel/tonyear"
	"github.com/spatialmodel/tonyear/montecarlo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type plotLine struct {
	name   string // lines without a name are left out of the legend
	data   []float64
	color  color.Color
	dashed bool
}

// PlotMonteCarlo plots the Monte Carlo summary bands, along with the
// deterministic baseline curve if it is not nil, and saves the figure
// to path. The image format is determined by the file extension.
func PlotMonteCarlo(path string, s *montecarlo.Summary, baseline tonyear.Curve) error {
	p := plot.New()
	p.Title.Text = "CO2 impulse response function"
	p.X.Label.Text = "Years since emission"
	p.Y.Label.Text = "Fraction remaining in atmosphere"
	p.Y.Min = 0

	blue := color.RGBA{B: 200, A: 255}
	grey := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	lines := []plotLine{
		{name: "mean", data: s.Mean, color: blue},
		{name: "±2σ", data: s.Plus2Sigma, color: blue, dashed: true},
		{data: s.Minus2Sigma, color: blue, dashed: true},
		{name: "5th–95th percentile", data: s.P95, color: grey, dashed: true},
		{data: s.P5, color: grey, dashed: true},
	}
	if baseline != nil {
		lines = append(lines, plotLine{name: tonyear.Joos2013Preset.Name, data: baseline, color: color.Black})
	}
	for _, l := range lines {
		xys := make(plotter.XYs, len(l.data))
		for t, v := range l.data {
			xys[t].X = float64(t)
			xys[t].Y = v
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("tonyear: plotting %s: %v", l.name, err)
		}
		line.LineStyle.Color = l.color
		if l.dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		if l.name != "" {
			p.Legend.Add(l.name, line)
		}
	}
	p.Legend.Top = true
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("tonyear: saving plot: %v", err)
	}
	return nil
}
