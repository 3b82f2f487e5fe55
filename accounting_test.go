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
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/kr/pretty"
	"gonum.org/v1/gonum/floats"
)

func roundTo(v, digits float64) float64 {
	scale := math.Pow(10, digits)
	return math.Round(v*scale) / scale
}

// Values from the IPCC Special Report on Land Use, Land-Use Change
// and Forestry (2000).
func TestIPCC2000TonYearValues(t *testing.T) {
	c := mustCurve(t, "ipcc_2000", DefaultHorizon)
	mc, err := CalculateTonYears(MouraCosta, c, 100, 46, 0)
	if err != nil {
		t.Fatal(err)
	}
	if have := roundTo(mc.BaselineAtmCost, 0); have != 46 {
		t.Errorf("mc baseline cost = %g, want 46", have)
	}
	if have := roundTo(mc.Benefit, 0); have != 46 {
		t.Errorf("mc benefit = %g, want 46", have)
	}

	lashof, err := CalculateTonYears(Lashof, c, 100, 46, 0)
	if err != nil {
		t.Fatal(err)
	}
	if have := roundTo(lashof.BaselineAtmCost, 0); have != 46 {
		t.Errorf("lashof baseline cost = %g, want 46", have)
	}
	if have := roundTo(lashof.Benefit, 0); have != 17 {
		t.Errorf("lashof benefit = %g, want 17", have)
	}
}

// Values from the NCX methodology (2020), Forests and Carbon: A Guide
// for Buyers and Policymakers.
func TestNCXTonYearValues(t *testing.T) {
	c := mustCurve(t, "ipcc_2007", DefaultHorizon)
	m, err := CalculateTonYears(MouraCosta, c, 100, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	md, err := CalculateTonYears(MouraCosta, c, 100, 1, 0.033)
	if err != nil {
		t.Fatal(err)
	}
	if have := roundTo(m.BaselineAtmCost, 0); have != 48 {
		t.Errorf("baseline cost = %g, want 48", have)
	}
	if have := roundTo(md.BaselineAtmCost, 0); have != 17 {
		t.Errorf("discounted baseline cost = %g, want 17", have)
	}
	if have := roundTo(md.BaselineAtmCost/m.Benefit, 0); have != 17 {
		t.Errorf("discounted cost / benefit = %g, want 17", have)
	}
}

func TestCalculateTonYears(t *testing.T) {
	for _, name := range PresetNames() {
		c := mustCurve(t, name, DefaultHorizon)
		for _, method := range Methods() {
			for _, horizon := range []int{1, 100, 1001} {
				for _, delay := range []int{0, 1, 46} {
					for _, rate := range []float64{0, 0.1} {
						if delay > horizon && method != IPCC {
							continue
						}
						t.Run(fmt.Sprintf("%s_%s_%d_%d_%g", name, method, horizon, delay, rate), func(t *testing.T) {
							r, err := CalculateTonYears(method, c, horizon, delay, rate)
							if err != nil {
								t.Fatal(err)
							}
							if len(r.Baseline) != min(horizon+1, len(c)) {
								t.Errorf("baseline length = %d", len(r.Baseline))
							}
							want := Parameters{Method: method, TimeHorizon: horizon, Delay: delay, DiscountRate: rate}
							if r.Parameters != want {
								t.Errorf("parameters = %+v, want %+v", r.Parameters, want)
							}
							if r.BaselineAtmCost <= 0 {
								t.Errorf("baseline cost = %g", r.BaselineAtmCost)
							}
							if delay > 0 && (r.Benefit <= 0 || r.Benefit > r.BaselineAtmCost+float64(delay)) {
								t.Errorf("benefit = %g", r.Benefit)
							}
						})
					}
				}
			}
		}
	}
}

func TestCalculateTonYearsInvalid(t *testing.T) {
	b := make([]float64, 20)
	floats.Span(b, 0, 19)
	var tests = []struct {
		method  Method
		horizon int
		delay   int
		msg     string
	}{
		{method: "foo", horizon: 10, delay: 5, msg: "No ton-year accounting method called foo"},
		{method: "foo", horizon: 10, delay: -1, msg: "Delay cannot be negative."},
		{method: "foo", horizon: -1, delay: 5, msg: "Time horizon must be greater than zero."},
		{method: MouraCosta, horizon: 0, delay: 0, msg: "Time horizon must be greater than zero."},
		{method: "foo", horizon: 30, delay: 5, msg: "Time horizon cannot be longer than length of the baseline array."},
		{method: Lashof, horizon: 10, delay: 11, msg: "Delay cannot be longer than the time horizon."},
		{method: MouraCosta, horizon: 10, delay: 11, msg: "Delay cannot be longer than the time horizon."},
	}
	for _, test := range tests {
		t.Run(test.msg, func(t *testing.T) {
			r, err := CalculateTonYears(test.method, b, test.horizon, test.delay, 0.1)
			if r != nil {
				t.Errorf("have result %+v, want nil", r)
			}
			if err == nil || err.Error() != test.msg {
				t.Fatalf("have error %v, want %q", err, test.msg)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error %v is not ErrInvalidArgument", err)
			}
		})
	}
}

func TestIPCCDelayBeyondHorizon(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	for _, delay := range []int{100, 101, 150, 5000} {
		r, err := CalculateTonYears(IPCC, c, 100, delay, 0)
		if err != nil {
			t.Fatalf("delay %d: %v", delay, err)
		}
		if r.Benefit != r.BaselineAtmCost {
			t.Errorf("delay %d: benefit = %g, want %g", delay, r.Benefit, r.BaselineAtmCost)
		}
		if r.NumForEquivalence != 1 {
			t.Errorf("delay %d: number needed = %g, want 1", delay, r.NumForEquivalence)
		}
		if len(r.Scenario) != 101 {
			t.Errorf("delay %d: scenario length = %d, want 101", delay, len(r.Scenario))
		}
	}
}

func TestCalculateTonYearsIdempotent(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	for _, method := range Methods() {
		t.Run(string(method), func(t *testing.T) {
			a, err := CalculateTonYears(method, c, 100, 30, 0.02)
			if err != nil {
				t.Fatal(err)
			}
			b, err := CalculateTonYears(method, c, 100, 30, 0.02)
			if err != nil {
				t.Fatal(err)
			}
			if diff := pretty.Diff(a, b); len(diff) != 0 {
				t.Errorf("results differ: %v", diff)
			}
			if math.Float64bits(a.NumForEquivalence) != math.Float64bits(b.NumForEquivalence) {
				t.Errorf("%g != %g", a.NumForEquivalence, b.NumForEquivalence)
			}
		})
	}
}

func TestCalculateTonYearsDoesNotModifyBaseline(t *testing.T) {
	c := mustCurve(t, "ipcc_2007", 200)
	orig := append(Curve(nil), c...)
	for _, method := range Methods() {
		r, err := CalculateTonYears(method, c, 100, 20, 0.05)
		if err != nil {
			t.Fatal(err)
		}
		r.Baseline[0] = -99
		r.Scenario[len(r.Scenario)-1] = -99
	}
	if !floats.Equal(c, orig) {
		t.Error("baseline was modified")
	}
}

func TestMouraCosta(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	r, err := CalculateTonYears(MouraCosta, c, 100, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Benefit != 20 {
		t.Errorf("benefit = %g, want 20", r.Benefit)
	}
	if len(r.Scenario) != 101 || r.Scenario[20] != -1 || r.Scenario[21] != 0 {
		t.Errorf("scenario = %v", r.Scenario)
	}

	// A delay of zero has no benefit.
	r, err = CalculateTonYears(MouraCosta, c, 100, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Benefit != 0 || !math.IsInf(r.NumForEquivalence, 0) {
		t.Errorf("benefit = %g, equivalence = %g", r.Benefit, r.NumForEquivalence)
	}

	// The delay may extend to the end of a baseline that is exactly as
	// long as the time horizon.
	r, err = CalculateTonYears(MouraCosta, c[:100], 100, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Benefit != 100 {
		t.Errorf("benefit = %g, want 100", r.Benefit)
	}
}

func TestIPCCAndLashof(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	for _, delay := range []int{1, 20, 50, 100} {
		t.Run(fmt.Sprint(delay), func(t *testing.T) {
			ipcc, err := CalculateTonYears(IPCC, c, 100, delay, 0)
			if err != nil {
				t.Fatal(err)
			}
			lashof, err := CalculateTonYears(Lashof, c, 100, delay, 0)
			if err != nil {
				t.Fatal(err)
			}
			// Without discounting, the burden removed from the horizon
			// equals the burden pushed beyond it.
			if different(ipcc.Benefit, lashof.Benefit, 1e-9) {
				t.Errorf("ipcc benefit %g != lashof benefit %g", ipcc.Benefit, lashof.Benefit)
			}
			if len(ipcc.Scenario) != 101 {
				t.Errorf("ipcc scenario length = %d", len(ipcc.Scenario))
			}
			if len(lashof.Scenario) != 101+delay {
				t.Errorf("lashof scenario length = %d", len(lashof.Scenario))
			}
		})
	}

	r, err := CalculateTonYears(IPCC, c, 100, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if different(r.NumForEquivalence, 1, 1e-12) {
		t.Errorf("delaying to the horizon: equivalence = %g, want 1", r.NumForEquivalence)
	}
}

func TestCompareAvoided(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	r, err := CalculateTonYears(MouraCosta, c, 100, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	ac, err := CompareAvoided(r, c, 100)
	if err != nil {
		t.Fatal(err)
	}
	if ac.DelayLength != 20 {
		t.Errorf("delay length = %d", ac.DelayLength)
	}
	if different(ac.AvoidedCRF, 19.84343331541894, 1e-9) {
		t.Errorf("avoided CRF = %g", ac.AvoidedCRF)
	}
	if different(ac.DelayCRF, 8.422018508355642, 1e-9) {
		t.Errorf("delay CRF = %g", ac.DelayCRF)
	}

	for _, it := range []int{0, 2000, 10} {
		if _, err := CompareAvoided(r, c, it); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("integration time %d: have error %v", it, err)
		}
	}
}

func TestEquivalencyClaims(t *testing.T) {
	c := mustCurve(t, "joos_2013", DefaultHorizon)
	claims, err := EquivalencyClaims(c, 100, []Method{MouraCosta, IPCC}, DefaultClaimDelays(), []int{100}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(claims) != 12 {
		t.Fatalf("have %d claims, want 12", len(claims))
	}
	if claims[0].Method != MouraCosta || claims[1].Method != IPCC || claims[2].DelayLength != 20 {
		t.Errorf("claims are out of order: %# v", pretty.Formatter(claims[:3]))
	}
	for _, cl := range claims {
		want := (cl.DelayCRF - cl.AvoidedCRF) / cl.AvoidedCRF
		if cl.Ratio != want {
			t.Errorf("ratio = %g, want %g", cl.Ratio, want)
		}
	}
	if _, err := EquivalencyClaims(c, 100, []Method{"car"}, []int{1}, []int{100}, 0); err == nil {
		t.Error("expected error for unknown method")
	}
}

// This example calculates how many tons of CO2 must have their
// emission delayed by 46 years to be equivalent to one ton of
// permanently avoided emissions.
func Example() {
	baseline, err := BaselineCurve("ipcc_2000", DefaultHorizon)
	if err != nil {
		panic(err)
	}
	for _, method := range Methods() {
		r, err := CalculateTonYears(method, baseline, 100, 46, 0)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s: cost=%.2f benefit=%.2f number needed=%.2f\n",
			method, r.BaselineAtmCost, r.Benefit, r.NumForEquivalence)
	}
	// Output:
	// mc: cost=45.76 benefit=46.00 number needed=0.99
	// ipcc: cost=45.76 benefit=16.64 number needed=2.75
	// lashof: cost=45.76 benefit=16.64 number needed=2.75
}
