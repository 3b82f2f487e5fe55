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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spatialmodel/tonyear"
	"github.com/spatialmodel/tonyear/montecarlo"
	"github.com/tealeg/xlsx"
)

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// checkFinite returns an error if any of the numbers in r cannot be
// represented in JSON.
func checkFinite(r *tonyear.Result) error {
	for _, v := range []float64{r.Parameters.DiscountRate, r.BaselineAtmCost, r.Benefit, r.NumForEquivalence} {
		if !isFinite(v) {
			return fmt.Errorf("tonyear: result for method %s and delay %d contains a non-finite value %v",
				r.Parameters.Method, r.Parameters.Delay, v)
		}
	}
	for _, c := range []tonyear.Curve{r.Baseline, r.Scenario} {
		for _, v := range c {
			if !isFinite(v) {
				return fmt.Errorf("tonyear: result for method %s and delay %d contains a non-finite curve value %v",
					r.Parameters.Method, r.Parameters.Delay, v)
			}
		}
	}
	return nil
}

// WriteJSON writes one or more results to the file at path as JSON.
// A single result is written as an object, multiple results as an array.
func WriteJSON(path string, results ...*tonyear.Result) error {
	for _, r := range results {
		if err := checkFinite(r); err != nil {
			return err
		}
	}
	var v interface{} = results
	if len(results) == 1 {
		v = results[0]
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("tonyear: writing JSON: %v", err)
	}
	return os.WriteFile(path, b, 0644)
}

// ReadResultJSON reads a single result written by WriteJSON.
func ReadResultJSON(path string) (*tonyear.Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := new(tonyear.Result)
	if err := json.Unmarshal(b, r); err != nil {
		return nil, fmt.Errorf("tonyear: reading JSON result: %v", err)
	}
	return r, nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// writeCSV writes a header and rows to w.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.WriteAll(rows)
}

// createFile creates the file at path, calls write on it, and closes it.
func createFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCurveCSV writes a curve to w with one row per year.
func WriteCurveCSV(w io.Writer, c tonyear.Curve) error {
	rows := make([][]string, len(c))
	for t, v := range c {
		rows[t] = []string{strconv.Itoa(t), fmtFloat(v)}
	}
	return writeCSV(w, []string{"year", "fraction"}, rows)
}

// WriteMonteCarloCSV writes the per-year Monte Carlo summary to w.
func WriteMonteCarloCSV(w io.Writer, s *montecarlo.Summary) error {
	rows := make([][]string, len(s.Mean))
	for t := range s.Mean {
		rows[t] = []string{
			strconv.Itoa(t),
			fmtFloat(s.Mean[t]),
			fmtFloat(s.Minus2Sigma[t]),
			fmtFloat(s.Plus2Sigma[t]),
			fmtFloat(s.P5[t]),
			fmtFloat(s.P95[t]),
		}
	}
	return writeCSV(w, []string{"year", "mean", "-2sigma", "+2sigma", "5th", "95th"}, rows)
}

var claimHeader = []string{"delay_length", "avoided_crf", "delay_crf", "method", "integration_time", "ratio"}

// WriteClaims writes an equivalency claim table to the file at path.
// The format is XLSX if path ends in ".xlsx" and CSV otherwise.
func WriteClaims(path string, claims []tonyear.Claim) error {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return writeClaimsXLSX(path, claims)
	}
	return createFile(path, func(w io.Writer) error { return WriteClaimsCSV(w, claims) })
}

// WriteClaimsCSV writes an equivalency claim table to w as CSV, with
// floating point values rounded to three decimal places.
func WriteClaimsCSV(w io.Writer, claims []tonyear.Claim) error {
	rows := make([][]string, len(claims))
	for i, c := range claims {
		rows[i] = []string{
			strconv.Itoa(c.DelayLength),
			fmt.Sprintf("%.3f", c.AvoidedCRF),
			fmt.Sprintf("%.3f", c.DelayCRF),
			string(c.Method),
			strconv.Itoa(c.IntegrationTime),
			fmt.Sprintf("%.3f", c.Ratio),
		}
	}
	return writeCSV(w, claimHeader, rows)
}

func writeClaimsXLSX(path string, claims []tonyear.Claim) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("equivalency")
	if err != nil {
		return fmt.Errorf("tonyear: creating spreadsheet: %v", err)
	}
	row := sheet.AddRow()
	for _, h := range claimHeader {
		row.AddCell().SetString(h)
	}
	for _, c := range claims {
		row = sheet.AddRow()
		row.AddCell().SetInt(c.DelayLength)
		row.AddCell().SetFloat(c.AvoidedCRF)
		row.AddCell().SetFloat(c.DelayCRF)
		row.AddCell().SetString(string(c.Method))
		row.AddCell().SetInt(c.IntegrationTime)
		row.AddCell().SetFloat(c.Ratio)
	}
	return f.Save(path)
}
