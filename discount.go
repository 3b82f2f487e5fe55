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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Discount returns a copy of c where each year t has been divided by
// (1+rate)^t. rate is a fraction, e.g. 0.033 for 3.3%. Rates are not
// checked; a rate of -1 results in infinite or NaN values.
func Discount(rate float64, c []float64) Curve {
	o := make(Curve, len(c))
	for t, v := range c {
		o[t] = v / math.Pow(1+rate, float64(t))
	}
	return o
}

// Integrate returns the integral of s calculated with the trapezoidal
// rule, assuming a spacing of one year between elements. Sequences
// with fewer than two elements integrate to zero.
func Integrate(s []float64) float64 {
	if len(s) < 2 {
		return 0
	}
	x := floats.Span(make([]float64, len(s)), 0, float64(len(s)-1))
	return integrate.Trapezoidal(x, s)
}
