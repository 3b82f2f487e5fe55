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
	"io"

	"github.com/shopspring/decimal"
	"github.com/spatialmodel/tonyear"
)

// round rounds v half-to-even and formats it with exactly places
// decimal places.
func round(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixedBank(places)
}

// PrintBenefitReport writes a human-readable summary of r to w.
func PrintBenefitReport(w io.Writer, r *tonyear.Result) error {
	_, err := fmt.Fprintf(w, `
Discount rate: %s%%
Delay: %d year(s)
Baseline atmospheric cost: %s ton-years
Benefit from 1tCO2 with delay: %s ton-years
Number needed: %s

`,
		round(r.Parameters.DiscountRate*100, 1),
		r.Parameters.Delay,
		round(r.BaselineAtmCost, 2),
		round(r.Benefit, 2),
		formatEquivalence(r.NumForEquivalence),
	)
	return err
}

// formatEquivalence formats the number of tons needed for equivalence,
// which is infinite or NaN when there is no benefit.
func formatEquivalence(v float64) string {
	if isFinite(v) {
		return round(v, 1)
	}
	return fmt.Sprint(v)
}
