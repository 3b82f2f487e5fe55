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
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/tonyear"
	"github.com/spatialmodel/tonyear/montecarlo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives status messages from the commands.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to tonyear.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose specifies whether to print debugging messages.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "preset",
			usage: `
              preset is the name of the published impulse response function
              parameter set used to build the baseline curve. Options are
              joos_2013, ipcc_2007, and ipcc_2000.`,
			shorthand:  "p",
			defaultVal: tonyear.Joos2013Preset.Name,
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), calcCmd.Flags(), compareCmd.Flags()},
		},
		{
			name: "horizon",
			usage: `
              horizon is the number of years in the baseline curve.`,
			defaultVal: tonyear.DefaultHorizon,
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), calcCmd.Flags(), compareCmd.Flags(), montecarloCmd.Flags()},
		},
		{
			name: "overrides",
			usage: `
              overrides replaces coefficients of the joos_2013 parameter set,
              in the format {"tau1":300,"a0":0.25}. Available coefficients
              are a0, a1, a2, a3, tau1, tau2, and tau3.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), calcCmd.Flags(), compareCmd.Flags()},
		},
		{
			name: "method",
			usage: `
              method is the ton-year accounting method: mc (Moura-Costa),
              ipcc, or lashof.`,
			shorthand:  "m",
			defaultVal: string(tonyear.MouraCosta),
			flagsets:   []*pflag.FlagSet{calcCmd.Flags()},
		},
		{
			name: "timehorizon",
			usage: `
              timehorizon is the period over which the impact of an emission
              is considered [years].`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{calcCmd.Flags(), compareCmd.Flags()},
		},
		{
			name: "delay",
			usage: `
              delay is the number of years that the emission is delayed.`,
			shorthand:  "d",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{calcCmd.Flags()},
		},
		{
			name: "discount",
			usage: `
              discount is the annual discount rate, as a fraction.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{calcCmd.Flags(), compareCmd.Flags()},
		},
		{
			name: "methods",
			usage: `
              methods is the list of accounting methods to compare.`,
			defaultVal: []string{string(tonyear.MouraCosta), string(tonyear.IPCC)},
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "delays",
			usage: `
              delays is the list of delay lengths to compare [years].`,
			defaultVal: tonyear.DefaultClaimDelays(),
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "integrationtimes",
			usage: `
              integrationtimes is the list of periods over which cumulative
              radiative forcing is compared [years].`,
			defaultVal: []int{100},
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "runs",
			usage: `
              runs is the number of Monte Carlo runs. It must be greater than one.`,
			shorthand:  "n",
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{montecarloCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed is the random number generator seed for the Monte Carlo
              simulation. If it is negative, a seed is chosen based on the
              current time and printed so the run can be repeated.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{montecarloCmd.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of goroutines used to evaluate the
              Monte Carlo curves. If it is zero, the number of CPUs is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{montecarloCmd.Flags()},
		},
		{
			name: "plot",
			usage: `
              plot is the location of an image file (e.g., .png or .svg) to
              save a plot of the Monte Carlo results to. If it is empty, no
              plot is made.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{montecarloCmd.Flags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open the plot after it is saved.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{montecarloCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the location of the output file. Results are written
              as JSON by calc and batch, as CSV by curve and montecarlo, and
              as CSV or XLSX (depending on the file extension) by compare.
              If it is empty, results are printed to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), calcCmd.Flags(), compareCmd.Flags(), montecarloCmd.Flags(), batchCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TONYEAR")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
			case []int:
				set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				set.StringP(option.name, option.shorthand, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(curveCmd)
	Root.AddCommand(calcCmd)
	Root.AddCommand(compareCmd)
	Root.AddCommand(montecarloCmd)
	Root.AddCommand(batchCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("tonyear: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		if l, ok := Log.(*logrus.Logger); ok {
			l.SetLevel(logrus.DebugLevel)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "tonyear",
	Short: "Ton-year carbon accounting calculations.",
	Long: `tonyear calculates the climate benefit of delaying the emission of CO2
according to the Moura-Costa, IPCC, and Lashof ton-year accounting methods,
and the number of delayed tons that are equivalent to one ton of permanently
avoided emissions. Use the subcommands specified below to access the
functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'TONYEAR_VAR' where 'VAR' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of tonyear.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tonyear v%s\n", tonyear.Version)
	},
	DisableAutoGenTag: true,
}

// curveCmd writes a baseline curve.
var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Write a baseline curve",
	Long: `curve calculates the baseline impulse response function curve for
the parameter set specified by --preset and writes it as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bc, err := baselineConfig(Cfg)
		if err != nil {
			return err
		}
		c, err := bc.Curve()
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), Cfg.GetString("output"), func(w io.Writer) error {
			return WriteCurveCSV(w, c)
		})
	},
	DisableAutoGenTag: true,
}

// calcCmd performs a single ton-year calculation.
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the ton-year benefit of a delayed emission",
	Long: `calc calculates the benefit of delaying the emission of one ton of CO2
by --delay years according to the accounting method specified by --method,
and prints a report. If --output is specified, the full result is also
written to that file as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bc, err := baselineConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		baseline, err := bc.Curve()
		if err != nil {
			return err
		}
		r, err := tonyear.CalculateTonYears(
			tonyear.Method(os.ExpandEnv(Cfg.GetString("method"))),
			baseline,
			Cfg.GetInt("timehorizon"),
			Cfg.GetInt("delay"),
			Cfg.GetFloat64("discount"),
		)
		if err != nil {
			return err
		}
		if err := PrintBenefitReport(cmd.OutOrStdout(), r); err != nil {
			return err
		}
		if outputFile == "" {
			return nil
		}
		if err := WriteJSON(outputFile, r); err != nil {
			return err
		}
		Log.WithField("file", outputFile).Info("wrote result")
		return nil
	},
	DisableAutoGenTag: true,
}

// compareCmd creates an equivalency claim table.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare delayed and avoided emissions",
	Long: `compare tests whether delaying the emission of one ton of CO2 has the
same cumulative radiative forcing as permanently avoiding the ton-year
equivalent amount, for every combination of --methods, --delays, and
--integrationtimes. The results include the ratio
(delay_crf - avoided_crf) / avoided_crf.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bc, err := baselineConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		methods, err := getMethods("methods", Cfg)
		if err != nil {
			return err
		}
		delays, err := getIntSlice("delays", Cfg)
		if err != nil {
			return err
		}
		integrationTimes, err := getIntSlice("integrationtimes", Cfg)
		if err != nil {
			return err
		}
		baseline, err := bc.Curve()
		if err != nil {
			return err
		}
		claims, err := tonyear.EquivalencyClaims(baseline, Cfg.GetInt("timehorizon"),
			methods, delays, integrationTimes, Cfg.GetFloat64("discount"))
		if err != nil {
			return err
		}
		if outputFile == "" {
			return WriteClaimsCSV(cmd.OutOrStdout(), claims)
		}
		if err := WriteClaims(outputFile, claims); err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{"file": outputFile, "rows": len(claims)}).Info("wrote equivalency claims")
		return nil
	},
	DisableAutoGenTag: true,
}

// montecarloCmd runs a Monte Carlo simulation of the baseline curve.
var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run a Monte Carlo simulation of the baseline curve",
	Long: `montecarlo samples the uncertainty in the Joos et al. (2013) impulse
response function parameters, as calculated by Olivié and Peters (2013), and
summarizes the resulting curves with the mean, ±2sigma, and 5th and 95th
percentile for each year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		plotFile, err := checkOutputFile(Cfg.GetString("plot"))
		if err != nil {
			return err
		}
		seed := Cfg.GetInt64("seed")
		if seed < 0 {
			seed = time.Now().UnixNano() & (1<<62 - 1)
		}
		Log.WithField("seed", seed).Info("starting Monte Carlo simulation")

		s := montecarlo.New(rand.NewPCG(uint64(seed), uint64(seed)))
		s.Workers = Cfg.GetInt("workers")
		s.Log = Log
		horizon := Cfg.GetInt("horizon")
		sum, err := s.Run(Cfg.GetInt("runs"), horizon)
		if err != nil {
			return err
		}

		if outputFile == "" {
			printMonteCarlo(cmd.OutOrStdout(), sum)
		} else {
			if err := createFile(outputFile, func(w io.Writer) error { return WriteMonteCarloCSV(w, sum) }); err != nil {
				return err
			}
			Log.WithField("file", outputFile).Info("wrote Monte Carlo summary")
		}
		if plotFile == "" {
			return nil
		}
		baseline, err := tonyear.BaselineCurve(tonyear.Joos2013Preset.Name, horizon)
		if err != nil {
			return err
		}
		if err := PlotMonteCarlo(plotFile, sum, baseline); err != nil {
			return err
		}
		Log.WithField("file", plotFile).Info("saved plot")
		if Cfg.GetBool("open") {
			return open.Run(plotFile)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// batchCmd runs the calculations in a batch file.
var batchCmd = &cobra.Command{
	Use:   "batch file",
	Short: "Run a batch of ton-year calculations",
	Long: `batch runs the ton-year calculations listed in a TOML or YAML file
and prints a report for each one. If --output is specified, the results are
also written to that file as a JSON array.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		b, err := LoadBatch(args[0])
		if err != nil {
			return err
		}
		results, err := b.Run()
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "Method: %s, time horizon: %d year(s)\n",
				r.Parameters.Method, r.Parameters.TimeHorizon)
			if err := PrintBenefitReport(cmd.OutOrStdout(), r); err != nil {
				return err
			}
		}
		if outputFile == "" {
			return nil
		}
		if err := WriteJSON(outputFile, results...); err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{"file": outputFile, "results": len(results)}).Info("wrote results")
		return nil
	},
	DisableAutoGenTag: true,
}

// writeOutput calls write with the file at path, or with stdout if
// path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	path, err := checkOutputFile(path)
	if err != nil {
		return err
	}
	if path == "" {
		return write(stdout)
	}
	if err := createFile(path, write); err != nil {
		return err
	}
	Log.WithField("file", path).Info("wrote output")
	return nil
}

// printMonteCarlo prints the Monte Carlo summary for selected years.
func printMonteCarlo(w io.Writer, s *montecarlo.Summary) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "year\tmean\t-2sigma\t+2sigma\t5th\t95th")
	for _, t := range []int{0, 20, 50, 100, 500, 1000} {
		if t >= len(s.Mean) {
			break
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			t, s.Mean[t], s.Minus2Sigma[t], s.Plus2Sigma[t], s.P5[t], s.P95[t])
	}
	tw.Flush()
}
