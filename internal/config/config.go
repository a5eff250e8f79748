// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package config gathers the chart generator's settings from defaults, an
// optional configuration file, SECTORCHART_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/petenewcomb/sectorchart"
	"github.com/petenewcomb/sectorchart/internal/bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrInvalid = constError("invalid configuration")

// EnvPrefix prefixes the environment variables that override settings.
const EnvPrefix = "SECTORCHART"

// Config holds every setting of the chart generator.
type Config struct {
	Input       string `mapstructure:"input"`
	InputFormat string `mapstructure:"input_format"`
	Output      string `mapstructure:"output"`
	NoPreview   bool   `mapstructure:"no_preview"`

	// PageWidth and PageHeight are in points.
	PageWidth  float64 `mapstructure:"page_width"`
	PageHeight float64 `mapstructure:"page_height"`

	// Rows and Cols fix the chart grid; zero sizes the grid to fit all
	// charts on one page.
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`

	Heading string `mapstructure:"heading"`
	Note    string `mapstructure:"note"`

	ExcludeLanguages  []string `mapstructure:"exclude_languages"`
	ExcludeBenchmarks []string `mapstructure:"exclude_benchmarks"`
	MinValues         int      `mapstructure:"min_values"`
	Order             string   `mapstructure:"order"`
	LangKey           string   `mapstructure:"lang_key"`

	Rescale string   `mapstructure:"rescale"`
	Unit    string   `mapstructure:"unit"`
	Colors  []string `mapstructure:"colors"`
	Scheme  string   `mapstructure:"scheme"`

	LogLevel string `mapstructure:"log_level"`

	// MissingConfigFile names the --config file that did not exist, so it can
	// be reported once logging is set up.
	MissingConfigFile string `mapstructure:"-"`
}

// Input formats.
const (
	FormatCSV      = "csv"
	FormatBenchfmt = "benchfmt"
)

// Rescale modes.
const (
	RescaleObserved = "observed"
	RescaleArea     = "area"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:      "benchmarks.csv",
		Output:     "sector_charts.pdf",
		PageWidth:  1064,
		PageHeight: 1064,
		Rows:       3,
		Cols:       3,
		Heading:    "Benchmark time by language",
		MinValues:  2,
		Order:      bench.OrderInput,
		LangKey:    bench.DefaultLanguageKey,
		Rescale:    RescaleObserved,
		Unit:       "s",
		Scheme:     "Paired",
		LogLevel:   "info",
	}
}

// flagNames maps setting keys to the command-line flags that set them.
var flagNames = map[string]string{
	"input":              "input",
	"input_format":       "input-format",
	"output":             "output",
	"no_preview":         "no-preview",
	"page_width":         "page-width",
	"page_height":        "page-height",
	"rows":               "rows",
	"cols":               "cols",
	"heading":            "heading",
	"note":               "note",
	"exclude_languages":  "exclude-language",
	"exclude_benchmarks": "exclude-benchmark",
	"min_values":         "min-values",
	"order":              "order",
	"lang_key":           "lang-key",
	"rescale":            "rescale",
	"unit":               "unit",
	"colors":             "colors",
	"scheme":             "scheme",
	"log_level":          "log-level",
}

// DefineFlags adds a flag for every setting to cmd, plus --config.
func DefineFlags(cmd *cobra.Command) {
	d := Default()
	f := cmd.Flags()
	f.StringP("config", "c", "", "path to a YAML, TOML or JSON configuration file")
	f.StringP("input", "i", d.Input, "benchmark data to chart")
	f.String("input-format", d.InputFormat, `input format: "csv" or "benchfmt" (default: by file extension)`)
	f.StringP("output", "o", d.Output, "output file; the extension selects pdf, svg, png, jpg, tiff, eps or tex")
	f.Bool("no-preview", d.NoPreview, "do not open the output in the default viewer")
	f.Float64("page-width", d.PageWidth, "page width in points")
	f.Float64("page-height", d.PageHeight, "page height in points")
	f.Int("rows", d.Rows, "chart rows per page; 0 fits all charts on one page")
	f.Int("cols", d.Cols, "chart columns per page; 0 fits all charts on one page")
	f.String("heading", d.Heading, "page heading")
	f.String("note", d.Note, "extra footnote")
	f.StringSlice("exclude-language", d.ExcludeLanguages, "language to leave out (repeatable)")
	f.StringSlice("exclude-benchmark", d.ExcludeBenchmarks, "benchmark to leave out (repeatable)")
	f.Int("min-values", d.MinValues, "skip benchmarks with fewer languages than this")
	f.String("order", d.Order, `chart order: "input", "slowest" or "name"`)
	f.String("lang-key", d.LangKey, "benchfmt key holding the language")
	f.String("rescale", d.Rescale, `radius fitting: "observed" or "area"`)
	f.String("unit", d.Unit, "unit appended to printed values")
	f.StringSlice("colors", d.Colors, "color names assigned to languages in order")
	f.String("scheme", d.Scheme, "brewer qualitative scheme used when no colors are given")
	f.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
}

// Load resolves the settings for cmd, whose flags must have been defined with
// DefineFlags. A configuration file that does not exist is skipped.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("input_format", d.InputFormat)
	v.SetDefault("output", d.Output)
	v.SetDefault("no_preview", d.NoPreview)
	v.SetDefault("page_width", d.PageWidth)
	v.SetDefault("page_height", d.PageHeight)
	v.SetDefault("rows", d.Rows)
	v.SetDefault("cols", d.Cols)
	v.SetDefault("heading", d.Heading)
	v.SetDefault("note", d.Note)
	v.SetDefault("exclude_languages", d.ExcludeLanguages)
	v.SetDefault("exclude_benchmarks", d.ExcludeBenchmarks)
	v.SetDefault("min_values", d.MinValues)
	v.SetDefault("order", d.Order)
	v.SetDefault("lang_key", d.LangKey)
	v.SetDefault("rescale", d.Rescale)
	v.SetDefault("unit", d.Unit)
	v.SetDefault("colors", d.Colors)
	v.SetDefault("scheme", d.Scheme)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	for key, flag := range flagNames {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	var missing string
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return Config{}, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				return Config{}, fmt.Errorf("reading %s: %w", configFile, err)
			}
			missing = configFile
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	c.MissingConfigFile = missing
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("%w: no input", ErrInvalid)
	case c.InputFormat != "" && c.InputFormat != FormatCSV && c.InputFormat != FormatBenchfmt:
		return fmt.Errorf("%w: input format %q", ErrInvalid, c.InputFormat)
	case c.PageWidth <= 0 || c.PageHeight <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrInvalid, c.PageWidth, c.PageHeight)
	case c.Rows < 0 || c.Cols < 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Rows, c.Cols)
	case c.MinValues < 1:
		return fmt.Errorf("%w: min values %d", ErrInvalid, c.MinValues)
	case !slices.Contains([]string{"", bench.OrderInput, bench.OrderSlowest, bench.OrderName}, c.Order):
		return fmt.Errorf("%w: order %q", ErrInvalid, c.Order)
	case c.Rescale != RescaleObserved && c.Rescale != RescaleArea:
		return fmt.Errorf("%w: rescale %q", ErrInvalid, c.Rescale)
	}
	return nil
}

// RescaleMode returns the chart fitting selected by Rescale.
func (c *Config) RescaleMode() sectorchart.RescaleMode {
	if c.Rescale == RescaleArea {
		return sectorchart.RescaleArea
	}
	return sectorchart.RescaleObserved
}
