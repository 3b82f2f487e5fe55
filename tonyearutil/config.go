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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/tonyear"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// BaselineConfig specifies how to build a baseline impulse response
// function curve.
type BaselineConfig struct {
	// Preset is the name of the published parameter set.
	Preset string `toml:"preset" yaml:"preset"`

	// Horizon is the number of years in the curve.
	Horizon int `toml:"horizon" yaml:"horizon"`

	// Overrides replaces individual coefficients of the joos_2013
	// parameter set, e.g. {"tau1": 300}.
	Overrides map[string]float64 `toml:"overrides" yaml:"overrides"`
}

// Curve builds the baseline curve.
func (c BaselineConfig) Curve() (tonyear.Curve, error) {
	horizon := c.Horizon
	if horizon == 0 {
		horizon = tonyear.DefaultHorizon
	}
	if len(c.Overrides) == 0 {
		return tonyear.BaselineCurve(c.Preset, horizon)
	}
	if c.Preset != tonyear.Joos2013Preset.Name {
		return nil, fmt.Errorf("tonyear: coefficient overrides can only be used with the %s preset, not %s",
			tonyear.Joos2013Preset.Name, c.Preset)
	}
	o := make(tonyear.Overrides)
	for name, v := range c.Overrides {
		coef, err := tonyear.ParseCoefficient(name)
		if err != nil {
			return nil, err
		}
		o[coef] = v
	}
	return tonyear.Joos2013(horizon, o)
}

// baselineConfig reads the baseline curve configuration from cfg.
func baselineConfig(cfg *viper.Viper) (BaselineConfig, error) {
	overrides, err := getStringMapString("overrides", cfg)
	if err != nil {
		return BaselineConfig{}, err
	}
	c := BaselineConfig{
		Preset:  os.ExpandEnv(cfg.GetString("preset")),
		Horizon: cfg.GetInt("horizon"),
	}
	if len(overrides) > 0 {
		c.Overrides = make(map[string]float64)
		for k, v := range overrides {
			f, err := cast.ToFloat64E(strings.TrimSpace(v))
			if err != nil {
				return BaselineConfig{}, fmt.Errorf("tonyear: reading override %s: %v", k, err)
			}
			c.Overrides[k] = f
		}
	}
	return c, nil
}

// getStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func getStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		o := make(map[string]string)
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			// Allow numeric JSON values as well as strings.
			var of map[string]float64
			if err2 := json.Unmarshal([]byte(v), &of); err2 != nil {
				return nil, fmt.Errorf("tonyear: reading %s: %v", varName, err)
			}
			o = make(map[string]string, len(of))
			for k, f := range of {
				o[k] = cast.ToString(f)
			}
		}
		return o, nil
	default:
		return nil, fmt.Errorf("tonyear: invalid type for %s: %#v", varName, i)
	}
}

// getMethods reads a list of accounting methods from cfg.
func getMethods(varName string, cfg *viper.Viper) ([]tonyear.Method, error) {
	s, err := cast.ToStringSliceE(cfg.Get(varName))
	if err != nil {
		return nil, fmt.Errorf("tonyear: reading '%s': %v", varName, err)
	}
	var o []tonyear.Method
	for _, m := range expandStringSlice(s) {
		for _, mm := range strings.Split(m, ",") {
			if mm = strings.TrimSpace(mm); mm != "" {
				o = append(o, tonyear.Method(mm))
			}
		}
	}
	if len(o) == 0 {
		return nil, fmt.Errorf("tonyear: no accounting methods specified in '%s'", varName)
	}
	return o, nil
}

// getIntSlice reads a list of integers from cfg.
func getIntSlice(varName string, cfg *viper.Viper) ([]int, error) {
	v := cfg.Get(varName)
	if s, ok := v.(string); ok {
		// Environment variables arrive as a single string.
		v = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '[' || r == ']' })
	}
	o, err := cast.ToIntSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("tonyear: reading '%s': %v", varName, err)
	}
	return o, nil
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// checkOutputFile makes sure that the output file's directory exists,
// and expands any environment variables. An empty path is allowed and
// means that no file will be written.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("tonyear: the output directory doesn't exist: %v", err)
	}
	return f, nil
}
