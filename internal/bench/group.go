// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/perf/benchmath"
)

// Confidence is the confidence level of the intervals summarising repeated
// timings.
const Confidence = 0.95

// Group holds the timings of one benchmark, one entry per language in the
// order the languages were first seen for that benchmark.
type Group struct {
	Benchmark string
	Languages []string
	Summaries []benchmath.Summary
}

// Len returns the number of languages in the group.
func (g *Group) Len() int {
	return len(g.Languages)
}

// Values returns the central timing of each language.
func (g *Group) Values() []float64 {
	values := make([]float64, len(g.Summaries))
	for i := range g.Summaries {
		values[i] = g.Summaries[i].Center
	}
	return values
}

// Notes returns the spread of each language's timings, or nil when every
// language was timed only once.
func (g *Group) Notes() []string {
	notes := make([]string, len(g.Summaries))
	found := false
	for i := range g.Summaries {
		notes[i] = FormatSpread(&g.Summaries[i])
		found = found || notes[i] != ""
	}
	if !found {
		return nil
	}
	return notes
}

// Largest returns the largest central timing in the group.
func (g *Group) Largest() float64 {
	largest := math.Inf(-1)
	for i := range g.Summaries {
		largest = max(largest, g.Summaries[i].Center)
	}
	return largest
}

// GroupByBenchmark groups records by benchmark, keeping benchmarks in the order
// they are first seen. Repeated timings of the same language and benchmark are
// summarised by their median and its confidence interval.
func GroupByBenchmark(records []Record) []Group {
	type samples struct {
		languages []string
		values    map[string][]float64
	}
	var order []string
	byBenchmark := make(map[string]*samples)
	for _, r := range records {
		s, ok := byBenchmark[r.Benchmark]
		if !ok {
			s = &samples{values: make(map[string][]float64)}
			byBenchmark[r.Benchmark] = s
			order = append(order, r.Benchmark)
		}
		if _, ok := s.values[r.Language]; !ok {
			s.languages = append(s.languages, r.Language)
		}
		s.values[r.Language] = append(s.values[r.Language], r.Time)
	}

	groups := make([]Group, len(order))
	for i, name := range order {
		s := byBenchmark[name]
		g := &groups[i]
		g.Benchmark = name
		g.Languages = s.languages
		g.Summaries = make([]benchmath.Summary, len(s.languages))
		for j, lang := range s.languages {
			g.Summaries[j] = summarize(s.values[lang])
		}
	}
	return groups
}

func summarize(values []float64) benchmath.Summary {
	if len(values) == 1 {
		v := values[0]
		return benchmath.Summary{Center: v, Lo: v, Hi: v}
	}
	thresholds := benchmath.DefaultThresholds
	sample := benchmath.NewSample(slices.Clone(values), &thresholds)
	summary := benchmath.AssumeNothing.Summary(sample, Confidence)
	// Too few samples for an interval: fall back to the observed range.
	if math.IsNaN(summary.Lo) || math.IsInf(summary.Lo, 0) || summary.Lo > summary.Center {
		summary.Lo = slices.Min(values)
	}
	if math.IsNaN(summary.Hi) || math.IsInf(summary.Hi, 0) || summary.Hi < summary.Center {
		summary.Hi = slices.Max(values)
	}
	return summary
}

// DropSmall splits groups into those with at least minValues languages and
// those with fewer.
func DropSmall(groups []Group, minValues int) (kept, dropped []Group) {
	for _, g := range groups {
		if g.Len() < minValues {
			dropped = append(dropped, g)
			continue
		}
		kept = append(kept, g)
	}
	return kept, dropped
}

// FormatSpread describes how far a summary's interval reaches from its center,
// relative to the center, or returns "" for a point summary.
func FormatSpread(s *benchmath.Summary) string {
	if s.Lo == s.Center && s.Hi == s.Center {
		return ""
	}
	plus := formatRatio(s.Hi-s.Center, s.Center)
	minus := formatRatio(s.Center-s.Lo, s.Center)
	switch plus {
	case minus:
		return fmt.Sprintf("±%s", plus)
	default:
		return fmt.Sprintf("+%s -%s", plus, minus)
	}
}

func formatRatio(n, d float64) string {
	switch {
	case d == 0:
		if n == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.2g", n)
	case math.Abs(n/d) < 1:
		return fmt.Sprintf("%.2g%%", math.Round(100*n/d))
	default:
		return fmt.Sprintf("%.2gx", n/d)
	}
}
