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

import "gonum.org/v1/gonum/floats"

// delaySize is the amount of CO2 whose emission is delayed [tCO2].
const delaySize = 1.0

// AvoidedComparison compares the cumulative radiative forcing (CRF) of
// delaying the emission of one ton of CO2 with the CRF of permanently
// avoiding the emission of the ton-year-equivalent smaller amount.
// CRF is proxied by the integral of the IRF curve.
type AvoidedComparison struct {
	DelayLength int     `json:"delay_length"`
	AvoidedCRF  float64 `json:"avoided_crf"`
	DelayCRF    float64 `json:"delay_crf"`
}

// CompareAvoided calculates an AvoidedComparison for the delay in r,
// integrating baseline over integrationTime years. integrationTime does
// not need to equal the time horizon used to calculate r.
func CompareAvoided(r *Result, baseline []float64, integrationTime int) (AvoidedComparison, error) {
	if integrationTime <= 0 {
		return AvoidedComparison{}, InvalidArgument("Integration time must be greater than zero.")
	}
	if len(baseline) < integrationTime {
		return AvoidedComparison{}, InvalidArgument("Integration time cannot be longer than length of the baseline array.")
	}
	delay := r.Parameters.Delay
	if delay > integrationTime {
		return AvoidedComparison{}, InvalidArgument("Delay cannot be longer than the integration time.")
	}
	avoidedSize := delaySize / r.NumForEquivalence

	b := baseline[:integrationTime]
	baselineCRF := Integrate(b)
	avoided := make([]float64, len(b))
	floats.ScaleTo(avoided, avoidedSize, b)

	return AvoidedComparison{
		DelayLength: delay,
		AvoidedCRF:  Integrate(avoided),
		DelayCRF:    baselineCRF - Integrate(baseline[:integrationTime-delay]),
	}, nil
}

// Claim is one row of an equivalency claim table.
type Claim struct {
	AvoidedComparison
	Method          Method `json:"method"`
	IntegrationTime int    `json:"integration_time"`

	// Ratio is the relative excess of the delay CRF over the avoided
	// CRF: (DelayCRF - AvoidedCRF) / AvoidedCRF.
	Ratio float64 `json:"ratio"`
}

// DefaultClaimDelays returns the delay lengths evaluated by default
// in an equivalency claim table [years].
func DefaultClaimDelays() []int { return []int{1, 20, 40, 60, 80, 100} }

// EquivalencyClaims tests whether delaying one ton of CO2 is equivalent to
// permanently avoiding the number of tons implied by each accounting
// method. It evaluates every combination of delay, method, and
// integration time (in that nesting order) and returns one Claim for each.
func EquivalencyClaims(baseline []float64, timeHorizon int, methods []Method, delays, integrationTimes []int, discountRate float64) ([]Claim, error) {
	var claims []Claim
	for _, delay := range delays {
		for _, m := range methods {
			r, err := CalculateTonYears(m, baseline, timeHorizon, delay, discountRate)
			if err != nil {
				return nil, err
			}
			for _, it := range integrationTimes {
				ac, err := CompareAvoided(r, baseline, it)
				if err != nil {
					return nil, err
				}
				claims = append(claims, Claim{
					AvoidedComparison: ac,
					Method:            m,
					IntegrationTime:   it,
					Ratio:             (ac.DelayCRF - ac.AvoidedCRF) / ac.AvoidedCRF,
				})
			}
		}
	}
	return claims, nil
}
