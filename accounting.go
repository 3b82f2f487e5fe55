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

// Method is a ton-year accounting method.
type Method string

// Available accounting methods.
const (
	// MouraCosta counts the ton-years of storage outside of the atmosphere
	// during the delay and ignores the effects of the eventual re-emission.
	MouraCosta Method = "mc"

	// IPCC counts the reduction in atmospheric ton-years within the time
	// horizon caused by moving the emission later.
	IPCC Method = "ipcc"

	// Lashof counts the atmospheric ton-years that are pushed beyond the
	// end of the time horizon by the delay.
	Lashof Method = "lashof"
)

// Methods returns all of the available accounting methods.
func Methods() []Method { return []Method{MouraCosta, IPCC, Lashof} }

func (m Method) valid() bool {
	switch m {
	case MouraCosta, IPCC, Lashof:
		return true
	}
	return false
}

// Parameters are the inputs to a ton-year calculation.
type Parameters struct {
	Method       Method  `json:"method" toml:"method" yaml:"method"`
	TimeHorizon  int     `json:"time_horizon" toml:"time_horizon" yaml:"time_horizon"`
	Delay        int     `json:"delay" toml:"delay" yaml:"delay"`
	DiscountRate float64 `json:"discount_rate" toml:"discount_rate" yaml:"discount_rate"`
}

// Result holds the outcome of a ton-year calculation.
type Result struct {
	Parameters Parameters `json:"parameters"`

	// Baseline is the discounted baseline curve over the time horizon.
	Baseline Curve `json:"baseline"`

	// Scenario is the discounted curve for the delayed emission.
	Scenario Curve `json:"scenario"`

	// BaselineAtmCost is the atmospheric cost of emitting one ton
	// at t=0 [ton-years].
	BaselineAtmCost float64 `json:"baseline_atm_cost"`

	// Benefit is the benefit of delaying the emission of one ton [ton-years].
	Benefit float64 `json:"benefit"`

	// NumForEquivalence is BaselineAtmCost / Benefit: the number of tons
	// that must be delayed to equal one ton of avoided emissions.
	NumForEquivalence float64 `json:"num_for_equivalence"`
}

// CalculateTonYears calculates the benefit of delaying the emission of
// one ton of CO2 by delay years according to the given accounting method.
// baseline models the residence of the emission in the atmosphere over
// time, timeHorizon is the period over which impacts are considered
// [years], and discountRate applies time preference to both costs and
// benefits.
//
// delay may exceed timeHorizon only for the IPCC method, where the whole
// baseline cost is then the benefit. When the benefit is zero,
// NumForEquivalence is infinite or NaN.
func CalculateTonYears(method Method, baseline []float64, timeHorizon, delay int, discountRate float64) (*Result, error) {
	if delay < 0 {
		return nil, InvalidArgument("Delay cannot be negative.")
	}
	if timeHorizon <= 0 {
		return nil, InvalidArgument("Time horizon must be greater than zero.")
	}
	if len(baseline) < timeHorizon {
		return nil, InvalidArgument("Time horizon cannot be longer than length of the baseline array.")
	}
	if !method.valid() {
		return nil, InvalidArgument("No ton-year accounting method called %s", method)
	}
	if delay > timeHorizon && method != IPCC {
		return nil, InvalidArgument("Delay cannot be longer than the time horizon.")
	}

	// All methods calculate the cost of emitting one ton at t=0 as the
	// atmospheric ton-years over 0 <= t <= timeHorizon.
	steps := timeHorizon + 1
	b := make(Curve, min(steps, len(baseline)))
	copy(b, baseline)
	baselineDiscounted := Discount(discountRate, b)
	cost := Integrate(baselineDiscounted)

	var scenario Curve
	var benefit float64
	switch method {
	case MouraCosta:
		delaySteps := delay + 1
		scenario = make(Curve, max(len(b), delaySteps))
		for i := 0; i < delaySteps; i++ {
			scenario[i] = -1
		}
		scenario = Discount(discountRate, scenario)
		benefit = -Integrate(scenario[:delaySteps])

	case IPCC:
		scenario = delayed(b, delay)
		if len(scenario) > steps {
			scenario = scenario[:steps]
		}
		scenario = Discount(discountRate, scenario)
		// An emission delayed past the horizon contributes nothing to it.
		var delayedPart Curve
		if delay < len(scenario) {
			delayedPart = scenario[delay:]
		}
		benefit = cost - Integrate(delayedPart)

	case Lashof:
		scenario = Discount(discountRate, delayed(b, delay))
		benefit = Integrate(scenario[timeHorizon:])
	}

	return &Result{
		Parameters: Parameters{
			Method:       method,
			TimeHorizon:  timeHorizon,
			Delay:        delay,
			DiscountRate: discountRate,
		},
		Baseline:          baselineDiscounted,
		Scenario:          scenario,
		BaselineAtmCost:   cost,
		Benefit:           benefit,
		NumForEquivalence: cost / benefit,
	}, nil
}

// delayed returns c preceded by delay zeros.
func delayed(c Curve, delay int) Curve {
	o := make(Curve, delay+len(c))
	copy(o[delay:], c)
	return o
}
