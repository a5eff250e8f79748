// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package page lays benchmark groups out as a grid of sector charts on one or
// more pages, adding a heading, a color legend and footnotes to every page.
package page

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gammazero/deque"
	"github.com/petenewcomb/sectorchart"
	"github.com/petenewcomb/sectorchart/internal/bench"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrSinglePage is returned when the groups need more than one page but the
// output format only holds one.
const ErrSinglePage = constError("output format cannot hold more than one page")

const ErrNoCharts = constError("nothing to chart")

// Colors is the color lookup used for the charts and the legend.
type Colors interface {
	sectorchart.ColorLookup

	// Labels returns the labels to list in the legend, in order.
	Labels() []string
}

// Options control the page layout and decorations.
type Options struct {
	// Width and Height give the page size.
	Width, Height vg.Length

	// Rows and Cols fix the chart grid of each page. If either is zero the
	// grid is sized to fit every group on a single page.
	Rows, Cols int

	// Padding separates the charts from each other and from the page edge.
	Padding vg.Length

	// Heading is printed centered at the top of every page.
	Heading string

	// Source names the input and Note adds a free-form line; both are printed
	// as footnotes when set.
	Source string
	Note   string

	// Unit is appended to every printed value.
	Unit string

	// Rescale is passed on to every chart.
	Rescale sectorchart.RescaleMode

	// Now supplies the generation timestamp printed in the footnotes. A nil
	// Now omits it.
	Now func() time.Time
}

// DefaultOptions returns a 1064x1064 point page holding a 3x3 grid.
func DefaultOptions() Options {
	return Options{
		Width:   vg.Points(1064),
		Height:  vg.Points(1064),
		Rows:    3,
		Cols:    3,
		Padding: vg.Points(12),
		Unit:    "s",
		Now:     time.Now,
	}
}

// Stats reports what Render produced.
type Stats struct {
	Pages  int
	Charts int
}

// pager is implemented by canvases able to start a new page, such as the PDF
// canvas.
type pager interface {
	NextPage()
}

// Render draws groups onto c, filling each page's grid row by row and moving
// to a new page when the grid is full. Nothing is drawn if the groups do not
// fit and c cannot start a new page.
func Render(c vg.CanvasSizer, groups []bench.Group, colors Colors, opts Options) (Stats, error) {
	var stats Stats
	if len(groups) == 0 {
		return stats, ErrNoCharts
	}
	rows, cols := opts.Rows, opts.Cols
	if rows <= 0 || cols <= 0 {
		rows, cols = sectorchart.RowsColumns(len(groups))
	}
	perPage := rows * cols
	pages := (len(groups) + perPage - 1) / perPage
	next, multi := c.(pager)
	if pages > 1 && !multi {
		return stats, fmt.Errorf("%w: %d charts in a %dx%d grid", ErrSinglePage, len(groups), rows, cols)
	}

	var queue deque.Deque[bench.Group]
	for _, g := range groups {
		queue.PushBack(g)
	}

	dc := draw.New(c)
	deco := newDecorations(colors, &opts)
	logger := zap.L()
	for queue.Len() > 0 {
		if stats.Pages > 0 {
			next.NextPage()
		}
		stats.Pages++

		body := deco.draw(dc, stats.Pages, pages)
		tiles := draw.Tiles{
			Rows:      rows,
			Cols:      cols,
			PadX:      opts.Padding,
			PadY:      opts.Padding,
			PadTop:    opts.Padding,
			PadBottom: opts.Padding,
			PadLeft:   opts.Padding,
			PadRight:  opts.Padding,
		}
		for y := 0; y < rows && queue.Len() > 0; y++ {
			for x := 0; x < cols && queue.Len() > 0; x++ {
				g := queue.PopFront()
				ch := sectorchart.New(g.Benchmark, g.Languages, g.Values(), colors)
				ch.Notes = g.Notes()
				ch.Unit = opts.Unit
				ch.Rescale = opts.Rescale
				if err := ch.Draw(tiles.At(body, x, y)); err != nil {
					return stats, fmt.Errorf("charting %s: %w", g.Benchmark, err)
				}
				stats.Charts++
			}
		}
		logger.Debug("Rendered page",
			zap.String("component", "page"),
			zap.Int("page", stats.Pages),
			zap.Int("charts", stats.Charts))
	}
	return stats, nil
}

// decorations draws the parts of a page around the chart grid.
type decorations struct {
	opts    *Options
	colors  Colors
	heading text.Style
	legend  text.Style
	foot    text.Style
	stamp   string
}

func newDecorations(colors Colors, opts *Options) *decorations {
	d := &decorations{
		opts:    opts,
		colors:  colors,
		heading: newTextStyle(18),
		legend:  newTextStyle(10),
		foot:    newTextStyle(8),
	}
	if opts.Now != nil {
		d.stamp = opts.Now().Format("2006-01-02 15:04:05 MST")
	}
	return d
}

func newTextStyle(size vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
	}
}

// draw decorates page n of total and returns the area left for charts.
func (d *decorations) draw(c draw.Canvas, n, total int) draw.Canvas {
	c.Push()
	defer c.Pop()

	pad := d.opts.Padding
	var top, bottom vg.Length

	if d.opts.Heading != "" {
		sty := d.heading
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		c.FillText(sty, vg.Point{X: c.Min.X + (c.Max.X-c.Min.X)/2, Y: c.Max.Y - pad}, d.opts.Heading)
		top = pad + sty.Height(d.opts.Heading)
	}

	notes := d.footnotes(n, total)
	y := c.Min.Y + pad
	if len(notes) > 0 {
		sty := d.foot
		sty.YAlign = draw.YBottom
		for i := len(notes) - 1; i >= 0; i-- {
			c.FillText(sty, vg.Point{X: c.Min.X + pad, Y: y}, notes[i])
			y += sty.Height(notes[i])
		}
	}
	y = d.drawLegend(c, y+pad/2)
	bottom = y - c.Min.Y

	return draw.Crop(c, 0, 0, bottom, -top)
}

func (d *decorations) footnotes(n, total int) []string {
	var notes []string
	if d.opts.Source != "" {
		notes = append(notes, "Source: "+d.opts.Source)
	}
	if d.opts.Note != "" {
		notes = append(notes, d.opts.Note)
	}
	if d.stamp != "" {
		notes = append(notes, "Generated "+d.stamp)
	}
	if total > 1 {
		notes = append(notes, fmt.Sprintf("Page %d of %d", n, total))
	}
	return notes
}

// legendEntry is one swatch and label of the legend.
type legendEntry struct {
	label string
	color color.Color
	width vg.Length
}

// drawLegend draws the legend in rows starting at y and growing upwards, and
// returns the y coordinate just above it.
func (d *decorations) drawLegend(c draw.Canvas, y vg.Length) vg.Length {
	labels := d.colors.Labels()
	if len(labels) == 0 {
		return y
	}
	pad := d.opts.Padding
	sty := d.legend
	sty.YAlign = draw.YCenter
	swatch := sty.Font.Size
	lineH := sty.Font.Size * 1.5
	avail := c.Max.X - c.Min.X - 2*pad

	var lines [][]legendEntry
	var line []legendEntry
	var used vg.Length
	for _, label := range labels {
		clr, err := d.colors.Color(label)
		if err != nil {
			continue
		}
		e := legendEntry{
			label: label,
			color: clr,
			width: swatch + swatch/2 + sty.Width(label) + 2*swatch,
		}
		if len(line) > 0 && used+e.width > avail {
			lines = append(lines, line)
			line, used = nil, 0
		}
		line = append(line, e)
		used += e.width
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}

	for i := len(lines) - 1; i >= 0; i-- {
		cy := y + lineH/2
		x := c.Min.X + pad
		for _, e := range lines[i] {
			c.FillPolygon(e.color, []vg.Point{
				{X: x, Y: cy - swatch/2},
				{X: x + swatch, Y: cy - swatch/2},
				{X: x + swatch, Y: cy + swatch/2},
				{X: x, Y: cy + swatch/2},
			})
			c.FillText(sty, vg.Point{X: x + swatch*1.5, Y: cy}, e.label)
			x += e.width
		}
		y += lineH
	}
	return y
}
