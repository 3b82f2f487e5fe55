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
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/tonyear"
	"gopkg.in/yaml.v3"
)

// Batch is a set of ton-year calculations that share a baseline curve.
// It can be read from a TOML or YAML file, for example:
//
//	preset = "ipcc_2000"
//	horizon = 1001
//
//	[[calculations]]
//	method = "mc"
//	time_horizon = 100
//	delay = 46
//	discount_rate = 0.0
type Batch struct {
	BaselineConfig `yaml:",inline"`

	Calculations []tonyear.Parameters `toml:"calculations" yaml:"calculations"`
}

// LoadBatch reads a batch file. Files ending in ".yaml" or ".yml" are
// read as YAML and all others as TOML.
func LoadBatch(path string) (*Batch, error) {
	path = os.ExpandEnv(path)
	b := new(Batch)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, b); err != nil {
			return nil, fmt.Errorf("tonyear: reading batch file %s: %v", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, b); err != nil {
			return nil, fmt.Errorf("tonyear: reading batch file %s: %v", path, err)
		}
	}
	if b.Preset == "" {
		b.Preset = tonyear.Joos2013Preset.Name
	}
	if len(b.Calculations) == 0 {
		return nil, fmt.Errorf("tonyear: batch file %s has no calculations", path)
	}
	return b, nil
}

// Run performs all of the calculations in the batch. It stops at the
// first calculation that fails.
func (b *Batch) Run() ([]*tonyear.Result, error) {
	baseline, err := b.Curve()
	if err != nil {
		return nil, err
	}
	results := make([]*tonyear.Result, len(b.Calculations))
	for i, c := range b.Calculations {
		r, err := tonyear.CalculateTonYears(c.Method, baseline, c.TimeHorizon, c.Delay, c.DiscountRate)
		if err != nil {
			return nil, fmt.Errorf("tonyear: batch calculation %d: %w", i, err)
		}
		results[i] = r
	}
	return results, nil
}
