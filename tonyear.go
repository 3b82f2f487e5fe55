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

// Package tonyear calculates ton-year equivalence metrics for carbon
// accounting: the atmospheric cost of emitting one ton of CO2, the
// benefit of delaying that emission under the Moura-Costa, IPCC and
// Lashof accounting conventions, and the number of delayed tons that are
// equivalent to one permanently avoided ton.
//
// The decay of an emission in the atmosphere is described by an impulse
// response function (IRF) curve, which can be built from one of the
// published parameter sets in this package (see BaselineCurve) or
// supplied by the caller as a plain []float64.
package tonyear

// Version gives the version number.
const Version = "0.1.0"
