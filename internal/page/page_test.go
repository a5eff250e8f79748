// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package page_test

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/petenewcomb/sectorchart"
	"github.com/petenewcomb/sectorchart/internal/bench"
	"github.com/petenewcomb/sectorchart/internal/page"
	"github.com/petenewcomb/sectorchart/internal/palette"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/recorder"
)

const sixRows = `c,fannkuch,1
go,fannkuch,2
rust,fannkuch,3
c,nbody,4
go,nbody,5
rust,nbody,6
`

// testCanvas records drawing onto a single page.
type testCanvas struct {
	recorder.Canvas
	w, h vg.Length
}

func (c *testCanvas) Size() (vg.Length, vg.Length) {
	return c.w, c.h
}

// multiPageCanvas also counts page breaks.
type multiPageCanvas struct {
	testCanvas
	breaks int
}

func (c *multiPageCanvas) NextPage() {
	c.breaks++
}

func newTestCanvas() *testCanvas {
	return &testCanvas{w: vg.Points(1064), h: vg.Points(1064)}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testOptions() page.Options {
	opts := page.DefaultOptions()
	opts.Now = fixedClock
	return opts
}

func loadGroups(t *testing.T, data string) ([]bench.Group, *palette.Map) {
	t.Helper()
	records, err := bench.ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	groups := bench.GroupByBenchmark(records)
	colors, err := palette.New(bench.Languages(records), palette.Options{})
	require.NoError(t, err)
	return groups, colors
}

func syntheticGroups(t *testing.T, n int) ([]bench.Group, *palette.Map) {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		for j, lang := range []string{"c", "go"} {
			fmt.Fprintf(&b, "%s,bench%02d,%d\n", lang, i, i+j+1)
		}
	}
	return loadGroups(t, b.String())
}

func requireBalanced(t *testing.T, actions []recorder.Action) {
	t.Helper()
	depth := 0
	for _, a := range actions {
		switch a.(type) {
		case *recorder.Push:
			depth++
		case *recorder.Pop:
			depth--
			require.GreaterOrEqual(t, depth, 0)
		}
	}
	require.Zero(t, depth)
}

func usedColors(actions []recorder.Action) map[color.Color]bool {
	used := make(map[color.Color]bool)
	for _, a := range actions {
		if sc, ok := a.(*recorder.SetColor); ok {
			used[sc.Color] = true
		}
	}
	return used
}

func TestRenderEndToEnd(t *testing.T) {
	chk := require.New(t)

	groups, colors := loadGroups(t, sixRows)
	chk.Len(groups, 2)
	chk.Equal([]float64{1, 2, 3}, groups[0].Values())
	chk.Equal([]float64{4, 5, 6}, groups[1].Values())

	c := newTestCanvas()
	stats, err := page.Render(c, groups, colors, testOptions())
	chk.NoError(err)
	chk.Equal(page.Stats{Pages: 1, Charts: 2}, stats)
	requireBalanced(t, c.Actions)

	used := usedColors(c.Actions)
	var langColors []color.Color
	for _, lang := range []string{"c", "go", "rust"} {
		clr, err := colors.Color(lang)
		chk.NoError(err)
		chk.True(used[clr], "%s color is drawn", lang)
		chk.NotContains(langColors, clr)
		langColors = append(langColors, clr)
	}

	// Same input, same colors.
	_, again := loadGroups(t, sixRows)
	for i, lang := range []string{"c", "go", "rust"} {
		clr, err := again.Color(lang)
		chk.NoError(err)
		chk.Equal(langColors[i], clr)
	}
}

func TestRenderUnknownLabel(t *testing.T) {
	chk := require.New(t)

	groups, colors := loadGroups(t, sixRows)
	colors.Remove("go")

	_, err := page.Render(newTestCanvas(), groups, colors, testOptions())
	chk.ErrorIs(err, sectorchart.ErrUnknownLabel)
	chk.Contains(err.Error(), "fannkuch")
}

func TestRenderDecorations(t *testing.T) {
	chk := require.New(t)

	groups, colors := loadGroups(t, sixRows)
	opts := testOptions()
	opts.Heading = "Run time by language"
	opts.Source = "benchmarks.csv"
	c := newTestCanvas()
	_, err := page.Render(c, groups, colors, opts)
	chk.NoError(err)

	var strs []string
	for _, a := range c.Actions {
		if fs, ok := a.(*recorder.FillString); ok {
			strs = append(strs, fs.String)
		}
	}
	chk.Contains(strs, "Run time by language")
	chk.Contains(strs, "Source: benchmarks.csv")
	chk.Contains(strs, "Generated 2024-03-01 12:00:00 UTC")
	chk.Contains(strs, "fannkuch")
	chk.Contains(strs, "rust")
	chk.NotContains(strs, "Page 1 of 1")
}

func TestRenderPages(t *testing.T) {
	chk := require.New(t)

	groups, colors := syntheticGroups(t, 10)
	c := &multiPageCanvas{testCanvas: *newTestCanvas()}
	stats, err := page.Render(c, groups, colors, testOptions())
	chk.NoError(err)
	chk.Equal(page.Stats{Pages: 2, Charts: 10}, stats)
	chk.Equal(1, c.breaks)
	requireBalanced(t, c.Actions)
}

func TestRenderSinglePage(t *testing.T) {
	chk := require.New(t)

	groups, colors := syntheticGroups(t, 10)
	c := newTestCanvas()
	_, err := page.Render(c, groups, colors, testOptions())
	chk.ErrorIs(err, page.ErrSinglePage)
	chk.Empty(c.Actions)

	opts := testOptions()
	opts.Rows, opts.Cols = 0, 0
	stats, err := page.Render(c, groups, colors, opts)
	chk.NoError(err)
	chk.Equal(page.Stats{Pages: 1, Charts: 10}, stats)
}

func TestRenderNothing(t *testing.T) {
	_, colors := loadGroups(t, sixRows)
	_, err := page.Render(newTestCanvas(), nil, colors, testOptions())
	require.ErrorIs(t, err, page.ErrNoCharts)
}

func TestFormat(t *testing.T) {
	chk := require.New(t)
	chk.Equal("pdf", page.Format("charts"))
	chk.Equal("svg", page.Format("out/charts.SVG"))
	chk.Equal("png", page.Format("charts.png"))
}

func TestWriteFile(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	groups, colors := loadGroups(t, sixRows)

	for _, name := range []string{"charts.pdf", "charts.svg", "charts.png"} {
		path := filepath.Join(dir, name)
		stats, err := page.WriteFile(path, groups, colors, testOptions())
		chk.NoError(err, name)
		chk.Equal(1, stats.Pages)
		info, err := os.Stat(path)
		chk.NoError(err)
		chk.Positive(info.Size())
	}

	_, err := page.WriteFile(filepath.Join(dir, "charts.bogus"), groups, colors, testOptions())
	chk.Error(err)
}

func TestWriteFileMultiPage(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	groups, colors := syntheticGroups(t, 12)

	stats, err := page.WriteFile(filepath.Join(dir, "charts.pdf"), groups, colors, testOptions())
	chk.NoError(err)
	chk.Equal(page.Stats{Pages: 2, Charts: 12}, stats)

	_, err = page.WriteFile(filepath.Join(dir, "charts.svg"), groups, colors, testOptions())
	chk.ErrorIs(err, page.ErrSinglePage)
	chk.NoFileExists(filepath.Join(dir, "charts.svg"))
}
