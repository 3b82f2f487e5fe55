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

package tonyear

import (
	"math"
	"sort"
)

// DefaultHorizon is the default number of years in a baseline curve.
const DefaultHorizon = 1001

// Curve is the fraction of an emitted unit of CO2 that remains in
// the atmosphere, indexed by the number of years since the emission.
type Curve []float64

// Preset holds the coefficients of a sum-of-exponentials impulse
// response function:
//
//	curve[t] = Weights[0] + Σ Weights[i] * exp(-t / TimeConstants[i])
//
// TimeConstants[0] is always zero; Weights[0] is the fraction that never
// decays.
type Preset struct {
	// Name is the name of the parameter set.
	Name string

	// Weights are the fractions of the emission in each decay mode.
	Weights []float64

	// TimeConstants are the e-folding times of each decay mode [years].
	TimeConstants []float64
}

// Curve evaluates the impulse response function for years
// 0 through horizon-1. horizon must be positive.
func (p Preset) Curve(horizon int) Curve {
	c := make(Curve, horizon)
	for t := range c {
		c[t] = p.at(float64(t))
	}
	return c
}

func (p Preset) at(t float64) float64 {
	v := p.Weights[0]
	for i := 1; i < len(p.Weights); i++ {
		v += p.Weights[i] * math.Exp(-t/p.TimeConstants[i])
	}
	return v
}

// Joos2013Preset holds the parameters from Joos et al. (2013), Table 5.
//
// Joos, F., Roth, R., Fuglestvedt, J. S., et al. (2013). Carbon dioxide
// and climate impulse response functions for the computation of greenhouse
// gas metrics: a multi-model analysis. Atmospheric Chemistry and Physics,
// 13(5), 2793–2825. https://doi.org/10.5194/acp-13-2793-2013
var Joos2013Preset = Preset{
	Name:          "joos_2013",
	Weights:       []float64{0.2173, 0.2240, 0.2824, 0.2763},
	TimeConstants: []float64{0, 394.4, 36.54, 4.304},
}

// IPCC2007Preset holds the parameters from IPCC AR4 (2007),
// Working Group I, Chapter 2, page 213.
// https://www.ipcc.ch/site/assets/uploads/2018/02/ar4-wg1-chapter2-1.pdf
var IPCC2007Preset = Preset{
	Name:          "ipcc_2007",
	Weights:       []float64{0.217, 0.259, 0.338, 0.186},
	TimeConstants: []float64{0, 172.9, 18.51, 1.186},
}

// IPCC2000Preset holds the parameters from the IPCC Special Report on
// Land Use, Land-Use Change and Forestry (2000), Chapter 2.3.6.3, Footnote 4.
// https://archive.ipcc.ch/ipccreports/sres/land_use/index.php?idp=74
var IPCC2000Preset = Preset{
	Name:          "ipcc_2000",
	Weights:       []float64{0.175602, 0.137467, 0.18576, 0.242302, 0.258868},
	TimeConstants: []float64{0, 421.093, 70.5965, 21.42165, 3.41537},
}

var presets = map[string]Preset{
	Joos2013Preset.Name: Joos2013Preset,
	IPCC2007Preset.Name: IPCC2007Preset,
	IPCC2000Preset.Name: IPCC2000Preset,
}

// LookupPreset returns the parameter set with the given name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the names of the available parameter sets
// in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BaselineCurve returns the impulse response function curve for the
// named parameter set over horizon years. Available names are
// "joos_2013", "ipcc_2007", and "ipcc_2000".
func BaselineCurve(name string, horizon int) (Curve, error) {
	if horizon <= 0 {
		return nil, InvalidArgument("t_horizon must be a postive integer")
	}
	p, ok := presets[name]
	if !ok {
		return nil, InvalidArgument("No baseline curve parameters by the name %s.", name)
	}
	return p.Curve(horizon), nil
}
