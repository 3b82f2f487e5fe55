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

import "strings"

// Coefficient names one of the parameters of the Joos et al. (2013)
// impulse response function.
type Coefficient string

// Coefficients of the Joos et al. (2013) impulse response function.
const (
	A0   Coefficient = "a0"
	A1   Coefficient = "a1"
	A2   Coefficient = "a2"
	A3   Coefficient = "a3"
	Tau1 Coefficient = "tau1"
	Tau2 Coefficient = "tau2"
	Tau3 Coefficient = "tau3"
)

// coefficientIndex maps each coefficient to its position in
// Joos2013Preset: weights first, then time constants.
var coefficientIndex = map[Coefficient]struct {
	weight bool
	i      int
}{
	A0:   {true, 0},
	A1:   {true, 1},
	A2:   {true, 2},
	A3:   {true, 3},
	Tau1: {false, 1},
	Tau2: {false, 2},
	Tau3: {false, 3},
}

// ParseCoefficient converts a case-insensitive name such as "tau2"
// into a Coefficient.
func ParseCoefficient(name string) (Coefficient, error) {
	c := Coefficient(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := coefficientIndex[c]; !ok {
		return "", InvalidArgument("No Joos 2013 coefficient called %s", name)
	}
	return c, nil
}

// Overrides replaces a subset of the Joos et al. (2013) coefficients.
// Coefficients that are not present keep their published values.
type Overrides map[Coefficient]float64

// Preset returns a copy of Joos2013Preset with the overrides applied.
func (o Overrides) Preset() (Preset, error) {
	p := Preset{
		Name:          Joos2013Preset.Name,
		Weights:       append([]float64(nil), Joos2013Preset.Weights...),
		TimeConstants: append([]float64(nil), Joos2013Preset.TimeConstants...),
	}
	for c, v := range o {
		idx, ok := coefficientIndex[c]
		if !ok {
			return Preset{}, InvalidArgument("No Joos 2013 coefficient called %s", c)
		}
		if idx.weight {
			p.Weights[idx.i] = v
		} else {
			p.TimeConstants[idx.i] = v
		}
	}
	return p, nil
}

// Joos2013 returns the impulse response function for CO2 using the
// parameter values from IPCC AR5 / Joos et al. (2013), with any
// coefficients in o replaced. A nil o gives the same curve as
// BaselineCurve("joos_2013", horizon).
func Joos2013(horizon int, o Overrides) (Curve, error) {
	if horizon <= 0 {
		return nil, InvalidArgument("t_horizon must be a postive integer")
	}
	p, err := o.Preset()
	if err != nil {
		return nil, err
	}
	return p.Curve(horizon), nil
}
