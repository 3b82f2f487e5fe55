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

// Package montecarlo propagates the uncertainty in the Joos et al. (2013)
// CO2 impulse response function into confidence bands on the baseline
// curve, using the parameter covariance calculated by:
//
// Olivié, D. J. L. and Peters, G. P. (2013). Variation in emission metrics
// due to variation in CO2 and temperature impulse response functions.
// Earth System Dynamics, 4, 267–286. https://doi.org/10.5194/esd-4-267-2013
package montecarlo

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/tonyear"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Parameter order in Mean and Cov: the log time constants t1-t3
// followed by the log weight ratios b1-b3.
const (
	t1, t2, t3, b1, b2, b3 = 0, 1, 2, 3, 4, 5
	nParams                = 6
)

// Mean is the mean of the log parameters from Olivié and Peters (2013)
// Table 5 (J13 values).
var Mean = []float64{5.479, 2.913, 0.496, 0.181, 0.401, -0.472}

// Cov is the covariance of the log parameters from Olivié and Peters
// (2013) Table 5 (J13 values).
var Cov = mat.NewSymDense(nParams, []float64{
	0.129, -0.058, 0.017, -0.042, -0.004, -0.009,
	-0.058, 0.167, -0.109, 0.072, -0.015, 0.003,
	0.017, -0.109, 0.148, -0.043, 0.013, -0.013,
	-0.042, 0.072, -0.043, 0.090, 0.009, 0.006,
	-0.004, -0.015, 0.013, 0.009, 0.082, 0.013,
	-0.009, 0.003, -0.013, 0.006, 0.013, 0.046,
})

// sigmaScale converts one standard deviation into the half-width of
// the ±2sigma band.
const sigmaScale = 1.96

// Sampler runs Monte Carlo simulations of the CO2 impulse response function.
type Sampler struct {
	// Mean and Cov specify the multivariate normal distribution of
	// the log parameters (t1, t2, t3, b1, b2, b3).
	Mean []float64
	Cov  mat.Symmetric

	// Src is the source of randomness for the parameter draws.
	Src rand.Source

	// Workers is the number of goroutines used to evaluate the curves.
	// If Workers <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	Log logrus.FieldLogger
}

// New returns a Sampler using the published parameter distribution
// and the given random source.
func New(src rand.Source) *Sampler {
	return &Sampler{
		Mean: Mean,
		Cov:  Cov,
		Src:  src,
		Log:  logrus.StandardLogger(),
	}
}

// Summary holds the results of a Monte Carlo simulation. Every slice
// has one element per year.
type Summary struct {
	Mean        []float64
	Minus2Sigma []float64
	Plus2Sigma  []float64

	// P5 and P95 are the 5th and 95th percentiles, interpolated
	// between the closest ranks.
	P5  []float64
	P95 []float64

	// Results holds the curve from each run as a column, so it has
	// dimensions years × runs.
	Results *mat.Dense
}

// Run runs a Monte Carlo simulation of the Joos et al. (2013) impulse
// response function with the given number of runs over horizon years,
// seeding the random number generator with seed.
func Run(runs, horizon int, seed uint64) (*Summary, error) {
	return New(rand.NewPCG(seed, seed)).Run(runs, horizon)
}

// Run runs a Monte Carlo simulation with the given number of runs
// over horizon years. runs must be greater than one.
func (s *Sampler) Run(runs, horizon int) (*Summary, error) {
	if runs <= 1 {
		return nil, tonyear.InvalidArgument("number of runs must be >1")
	}
	if horizon <= 0 {
		return nil, tonyear.InvalidArgument("t_horizon must be a postive integer")
	}
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	start := time.Now()

	dist, ok := distmv.NewNormal(s.Mean, s.Cov, s.Src)
	if !ok {
		return nil, tonyear.InvalidArgument("parameter covariance matrix is not positive definite")
	}
	// Draw all of the parameters before evaluating any curves so that the
	// sequence of draws doesn't depend on the number of workers.
	draws := make([]tonyear.Preset, runs)
	for i := range draws {
		draws[i] = Preset(dist.Rand(nil))
	}

	results := mat.NewDense(horizon, runs, nil)
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for j := w; j < runs; j += workers {
				// Each worker writes only to its own columns.
				results.SetCol(j, draws[j].Curve(horizon))
			}
		}(w)
	}
	wg.Wait()

	sum := summarize(results)
	log.WithFields(logrus.Fields{
		"runs":     runs,
		"horizon":  horizon,
		"workers":  workers,
		"duration": time.Since(start),
	}).Debug("montecarlo: finished simulation")
	return sum, nil
}

// Preset converts one draw of log parameters (t1, t2, t3, b1, b2, b3)
// into impulse response function coefficients. The non-decaying weight
// a0 is whatever remains after the three decaying weights.
func Preset(x []float64) tonyear.Preset {
	e := make([]float64, len(x))
	for i, v := range x {
		e[i] = math.Exp(v)
	}
	denom := 1 + e[b1] + e[b2] + e[b3]
	a1, a2, a3 := e[b1]/denom, e[b2]/denom, e[b3]/denom
	return tonyear.Preset{
		Name:          tonyear.Joos2013Preset.Name,
		Weights:       []float64{1 - a1 - a2 - a3, a1, a2, a3},
		TimeConstants: []float64{0, e[t1], e[t2], e[t3]},
	}
}

// summarize calculates the statistics of each row of results.
func summarize(results *mat.Dense) *Summary {
	years, runs := results.Dims()
	s := &Summary{
		Mean:        make([]float64, years),
		Minus2Sigma: make([]float64, years),
		Plus2Sigma:  make([]float64, years),
		P5:          make([]float64, years),
		P95:         make([]float64, years),
		Results:     results,
	}
	row := make([]float64, runs)
	for i := 0; i < years; i++ {
		mat.Row(row, i, results)
		mean, std := stat.PopMeanStdDev(row, nil)
		s.Mean[i] = mean
		s.Plus2Sigma[i] = mean + sigmaScale*std
		s.Minus2Sigma[i] = mean - sigmaScale*std
		sort.Float64s(row)
		s.P5[i] = percentile(row, 0.05)
		s.P95[i] = percentile(row, 0.95)
	}
	return s
}

// percentile returns the p quantile of the sorted values x, linearly
// interpolating between the closest ranks (Hyndman and Fan type 7).
func percentile(x []float64, p float64) float64 {
	h := float64(len(x)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(x) {
		return x[len(x)-1]
	}
	return x[lo] + (h-float64(lo))*(x[lo+1]-x[lo])
}
