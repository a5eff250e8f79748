// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench_test

import (
	"testing"

	"github.com/petenewcomb/sectorchart/internal/bench"
	"github.com/stretchr/testify/require"
	"golang.org/x/perf/benchmath"
	"pgregory.net/rapid"
)

func TestGroupByBenchmark(t *testing.T) {
	chk := require.New(t)

	groups := bench.GroupByBenchmark([]bench.Record{
		{Language: "go", Benchmark: "nbody", Time: 2},
		{Language: "c", Benchmark: "fannkuch", Time: 1},
		{Language: "c", Benchmark: "nbody", Time: 1},
		{Language: "go", Benchmark: "fannkuch", Time: 3},
	})
	chk.Len(groups, 2)

	chk.Equal("nbody", groups[0].Benchmark)
	chk.Equal([]string{"go", "c"}, groups[0].Languages)
	chk.Equal([]float64{2, 1}, groups[0].Values())
	chk.Nil(groups[0].Notes())

	chk.Equal("fannkuch", groups[1].Benchmark)
	chk.Equal([]string{"c", "go"}, groups[1].Languages)
	chk.Equal(3.0, groups[1].Largest())
}

func TestGroupByBenchmarkRepeatedSamples(t *testing.T) {
	chk := require.New(t)

	groups := bench.GroupByBenchmark([]bench.Record{
		{Language: "go", Benchmark: "nbody", Time: 9},
		{Language: "go", Benchmark: "nbody", Time: 1},
		{Language: "go", Benchmark: "nbody", Time: 2},
		{Language: "c", Benchmark: "nbody", Time: 4},
	})
	chk.Len(groups, 1)
	g := groups[0]
	chk.Equal([]string{"go", "c"}, g.Languages)
	chk.Equal(2.0, g.Summaries[0].Center, "median of repeated timings")
	chk.LessOrEqual(g.Summaries[0].Lo, 2.0)
	chk.GreaterOrEqual(g.Summaries[0].Hi, 2.0)

	notes := g.Notes()
	chk.Len(notes, 2)
	chk.Equal("", notes[1])
}

func TestDropSmall(t *testing.T) {
	chk := require.New(t)

	groups := bench.GroupByBenchmark([]bench.Record{
		{Language: "go", Benchmark: "solo", Time: 2},
		{Language: "go", Benchmark: "pair", Time: 1},
		{Language: "c", Benchmark: "pair", Time: 1},
	})
	kept, dropped := bench.DropSmall(groups, 2)
	chk.Len(kept, 1)
	chk.Equal("pair", kept[0].Benchmark)
	chk.Len(dropped, 1)
	chk.Equal("solo", dropped[0].Benchmark)
}

func TestFormatSpread(t *testing.T) {
	chk := require.New(t)
	chk.Equal("", bench.FormatSpread(&benchmath.Summary{Center: 1, Lo: 1, Hi: 1}))
	chk.Equal("±10%", bench.FormatSpread(&benchmath.Summary{Center: 10, Lo: 9, Hi: 11}))
	chk.Equal("+20% -10%", bench.FormatSpread(&benchmath.Summary{Center: 10, Lo: 9, Hi: 12}))
	chk.Equal("+2x -50%", bench.FormatSpread(&benchmath.Summary{Center: 10, Lo: 5, Hi: 30}))
}

func TestOrder(t *testing.T) {
	chk := require.New(t)

	groups := bench.GroupByBenchmark([]bench.Record{
		{Language: "go", Benchmark: "b", Time: 2},
		{Language: "go", Benchmark: "c", Time: 5},
		{Language: "go", Benchmark: "a", Time: 2},
	})
	names := func(gs []bench.Group) []string {
		var out []string
		for _, g := range gs {
			out = append(out, g.Benchmark)
		}
		return out
	}

	ordered, err := bench.Order(groups, bench.OrderInput)
	chk.NoError(err)
	chk.Equal([]string{"b", "c", "a"}, names(ordered))

	ordered, err = bench.Order(groups, bench.OrderName)
	chk.NoError(err)
	chk.Equal([]string{"a", "b", "c"}, names(ordered))

	ordered, err = bench.Order(groups, bench.OrderSlowest)
	chk.NoError(err)
	chk.Equal([]string{"c", "b", "a"}, names(ordered), "ties keep input order")

	_, err = bench.Order(groups, "random")
	chk.ErrorIs(err, bench.ErrUnknownOrder)
}

func TestOrderSlowestIsSortedPermutation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := rapid.SliceOf(rapid.Float64Range(0, 100)).Draw(t, "times")
		var records []bench.Record
		for i, v := range times {
			records = append(records, bench.Record{
				Language:  "go",
				Benchmark: string(rune('A' + i%26)) + string(rune('a'+i/26)),
				Time:      v,
			})
		}
		groups := bench.GroupByBenchmark(records)
		ordered, err := bench.Order(groups, bench.OrderSlowest)
		require.NoError(t, err)
		require.Len(t, ordered, len(groups))
		for i := 1; i < len(ordered); i++ {
			require.GreaterOrEqual(t, ordered[i-1].Largest(), ordered[i].Largest())
		}
	})
}
