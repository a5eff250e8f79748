// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command sectorchart reads benchmark timings and draws one sector chart per
// benchmark, comparing the languages each benchmark was run in.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/petenewcomb/sectorchart/internal/bench"
	"github.com/petenewcomb/sectorchart/internal/config"
	"github.com/petenewcomb/sectorchart/internal/logging"
	"github.com/petenewcomb/sectorchart/internal/page"
	"github.com/petenewcomb/sectorchart/internal/palette"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sectorchart",
		Short:        "Draw sector charts of benchmark timings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			done, err := logging.Setup(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer done()
			reportConfig(&cfg)
			return run(&cfg, out, time.Now)
		},
	}
	config.DefineFlags(cmd)
	return cmd
}

// reportConfig logs configuration problems found before logging was set up.
func reportConfig(cfg *config.Config) {
	if cfg.MissingConfigFile != "" {
		zap.L().Warn("No config file found",
			zap.String("component", "config"),
			zap.String("path", cfg.MissingConfigFile))
	}
}

func run(cfg *config.Config, out io.Writer, now func() time.Time) error {
	logger := zap.L().With(zap.String("component", "sectorchart"))

	records, err := readInput(cfg)
	if err != nil {
		return err
	}
	records = bench.Filter(records, cfg.ExcludeLanguages, cfg.ExcludeBenchmarks)
	groups, dropped := bench.DropSmall(bench.GroupByBenchmark(records), cfg.MinValues)
	skip := make([]string, len(dropped))
	for i, g := range dropped {
		skip[i] = g.Benchmark
		logger.Info("Skipping benchmark with too few languages",
			zap.String("benchmark", g.Benchmark),
			zap.Int("languages", g.Len()))
	}

	langs := bench.Languages(bench.Filter(records, nil, skip))
	colors, err := palette.New(langs, palette.Options{Names: cfg.Colors, Scheme: cfg.Scheme})
	if err != nil {
		return err
	}
	if colors.Len() < len(langs) {
		logger.Warn("Not enough colors for every language",
			zap.Int("colors", colors.Len()),
			zap.Int("languages", len(langs)))
	}

	groups, err = bench.Order(groups, cfg.Order)
	if err != nil {
		return err
	}

	opts := page.DefaultOptions()
	opts.Width = vg.Points(cfg.PageWidth)
	opts.Height = vg.Points(cfg.PageHeight)
	opts.Rows = cfg.Rows
	opts.Cols = cfg.Cols
	opts.Heading = cfg.Heading
	opts.Note = cfg.Note
	opts.Source = sourceName(cfg.Input)
	opts.Unit = cfg.Unit
	opts.Rescale = cfg.RescaleMode()
	opts.Now = now

	stats, err := page.WriteFile(cfg.Output, groups, colors, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s on %s to %s\n",
		plural(stats.Charts, "chart"), plural(stats.Pages, "page"), cfg.Output)

	if !cfg.NoPreview {
		if err := browser.OpenFile(cfg.Output); err != nil {
			logger.Warn("Could not open preview", zap.Error(err))
		}
	}
	return nil
}

func readInput(cfg *config.Config) ([]bench.Record, error) {
	var r io.Reader = os.Stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	format := cfg.InputFormat
	if format == "" {
		format = config.FormatBenchfmt
		if cfg.Input == "-" || strings.EqualFold(filepath.Ext(cfg.Input), ".csv") {
			format = config.FormatCSV
		}
	}
	if format == config.FormatCSV {
		records, err := bench.ReadCSV(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Input, err)
		}
		return records, nil
	}
	return bench.ReadBenchfmt(r, cfg.Input, cfg.LangKey)
}

func sourceName(input string) string {
	if input == "-" {
		return "standard input"
	}
	return filepath.Base(input)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
