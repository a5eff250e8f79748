// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ColorLookup resolves the fill color of a slice from its label.
type ColorLookup interface {
	Color(label string) (color.Color, error)
}

// RescaleMode selects how wedge radii are fitted into the available space.
type RescaleMode int

const (
	// RescaleObserved computes each radius from its raw value (as an area
	// outside InnerRadius) and then linearly maps the observed [min, max]
	// radii onto [InnerRadius, bound]. The smallest value therefore lands on
	// the inner radius.
	RescaleObserved RescaleMode = iota

	// RescaleArea scales the raw values so that the largest one fills the
	// sector out to the bound and derives every other radius from its scaled
	// area, keeping wedge areas exactly proportional to the values.
	RescaleArea
)

// DefaultGap is the angle removed from each side of every slice.
const DefaultGap = 2 * math.Pi / 180

// arcStep bounds the angular distance between consecutive polygon vertices
// used to approximate arcs.
const arcStep = math.Pi / 180

// A Chart is a sector chart: one annular wedge per value, all wedges sharing
// the same center, with equal angular width and area proportional to the
// value.
type Chart struct {
	// Title is drawn centered at the top of the chart's rectangle.
	Title string

	// Labels name each value and select its color.
	Labels []string

	// Values are the raw measurements. They must not be negative.
	Values []float64

	// Notes, if non-nil, holds an extra line printed under each value.
	Notes []string

	// Colors provides the fill color for each label.
	Colors ColorLookup

	// Unit is appended to the printed values.
	Unit string

	// Gap is the angle, in radians, trimmed from both sides of every slice.
	Gap float64

	// InnerRadius is the radius of the hole in the middle of the chart.
	InnerRadius vg.Length

	// LabelMargin is kept free between the outermost possible wedge edge and
	// the chart's rectangle so value labels have room.
	LabelMargin vg.Length

	// Rescale selects how radii are fitted to the rectangle.
	Rescale RescaleMode

	// LineStyle outlines each wedge. A zero width disables outlines.
	LineStyle draw.LineStyle

	// TitleStyle, LabelStyle and ValueStyle style the title, the curved
	// slice labels and the printed values.
	TitleStyle text.Style
	LabelStyle text.Style
	ValueStyle text.Style
}

// New returns a chart with default styling for the given labels and values.
func New(title string, labels []string, values []float64, colors ColorLookup) *Chart {
	return &Chart{
		Title:       title,
		Labels:      labels,
		Values:      values,
		Colors:      colors,
		Gap:         DefaultGap,
		InnerRadius: vg.Points(12),
		LabelMargin: vg.Points(14),
		TitleStyle:  newTextStyle(12),
		LabelStyle:  newTextStyle(7),
		ValueStyle:  newTextStyle(6),
	}
}

func newTextStyle(size vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
	}
}

// Slice is one laid out wedge of a chart. Angles are measured clockwise from
// 12 o'clock, in radians.
type Slice struct {
	Label      string
	Value      float64
	Note       string
	Start, End float64
	Outer      vg.Length
	Color      color.Color
}

// Mid returns the angle halfway through the slice.
func (s *Slice) Mid() float64 {
	return (s.Start + s.End) / 2
}

// Layout computes where the chart's wedges go within r without drawing
// anything. It returns the chart center, the bound on the outer radius, and
// one Slice per value.
func (ch *Chart) Layout(r vg.Rectangle) (center vg.Point, bound vg.Length, slices []Slice, err error) {
	n := len(ch.Values)
	if n == 0 {
		return center, 0, nil, ErrNoValues
	}
	if len(ch.Labels) != n || (ch.Notes != nil && len(ch.Notes) != n) {
		return center, 0, nil, fmt.Errorf("%w: %d labels, %d values", ErrLabelCount, len(ch.Labels), n)
	}
	if ch.Colors == nil {
		return center, 0, nil, fmt.Errorf("%w: no color lookup", ErrUnknownLabel)
	}

	slices = make([]Slice, n)
	for i, label := range ch.Labels {
		v := ch.Values[i]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return center, 0, nil, fmt.Errorf("sectorchart: invalid value %v for %q", v, label)
		}
		clr, err := ch.Colors.Color(label)
		switch {
		case errors.Is(err, ErrUnknownLabel):
			return center, 0, nil, err
		case err != nil:
			return center, 0, nil, fmt.Errorf("%w %q: %w", ErrUnknownLabel, label, err)
		}
		s := &slices[i]
		s.Label = label
		s.Value = v
		s.Color = clr
		if ch.Notes != nil {
			s.Note = ch.Notes[i]
		}
	}

	area := ch.plotArea(r)
	w := area.Max.X - area.Min.X
	h := area.Max.Y - area.Min.Y
	bound = min(w, h) / 2
	if bound <= ch.InnerRadius {
		return center, 0, nil, fmt.Errorf("%w: %v available, inner radius %v", ErrNoRoom, bound, ch.InnerRadius)
	}
	center = vg.Point{X: area.Min.X + w/2, Y: area.Min.Y + h/2}

	step := 2 * math.Pi / float64(n)
	gap := min(ch.Gap, step/4)
	for i := range slices {
		slices[i].Start = float64(i)*step + gap
		slices[i].End = float64(i+1)*step - gap
	}

	inner := ch.InnerRadius.Points()
	switch ch.Rescale {
	case RescaleArea:
		ch.fitArea(slices, inner, bound.Points())
	default:
		ch.fitObserved(slices, inner, bound.Points())
	}
	return center, bound, slices, nil
}

func (ch *Chart) fitObserved(slices []Slice, inner, bound float64) {
	radii := make([]float64, len(slices))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range slices {
		s := &slices[i]
		radii[i] = OuterRadiusGivenArea(s.Value, inner, s.Start, s.End)
		lo = min(lo, radii[i])
		hi = max(hi, radii[i])
	}
	for i := range slices {
		slices[i].Outer = vg.Points(Rescale(radii[i], lo, hi, inner, bound))
	}
}

func (ch *Chart) fitArea(slices []Slice, inner, bound float64) {
	largest := 0
	for i := range slices {
		if slices[i].Value > slices[largest].Value {
			largest = i
		}
	}
	top := &slices[largest]
	if top.Value == 0 {
		for i := range slices {
			slices[i].Outer = vg.Points(inner)
		}
		return
	}
	scale := AreaOfSector(inner, bound, top.Start, top.End) / top.Value
	for i := range slices {
		s := &slices[i]
		s.Outer = vg.Points(OuterRadiusGivenArea(s.Value*scale, inner, s.Start, s.End))
	}
}

// plotArea is the part of r left for wedges once the title band and label
// margin are removed.
func (ch *Chart) plotArea(r vg.Rectangle) vg.Rectangle {
	if ch.Title != "" {
		r.Max.Y -= ch.TitleStyle.Height(ch.Title) + ch.TitleStyle.Font.Size/2
	}
	r.Min.X += ch.LabelMargin
	r.Max.X -= ch.LabelMargin
	r.Min.Y += ch.LabelMargin
	r.Max.Y -= ch.LabelMargin
	return r
}

// Draw lays the chart out within the canvas rectangle and draws it. Nothing
// is drawn when Layout fails.
func (ch *Chart) Draw(c draw.Canvas) error {
	center, _, slices, err := ch.Layout(c.Rectangle)
	if err != nil {
		return err
	}

	c.Push()
	defer c.Pop()

	for i := range slices {
		ch.drawWedge(c, center, &slices[i])
	}
	for i := range slices {
		ch.drawLabel(c, center, &slices[i])
		ch.drawValue(c, center, &slices[i])
	}
	if ch.Title != "" {
		ch.drawTitle(c)
	}
	return nil
}

// polar converts a radius and a clockwise-from-12-o'clock angle to a point.
func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	sin, cos := math.Sincos(theta)
	return vg.Point{
		X: center.X + r*vg.Length(sin),
		Y: center.Y + r*vg.Length(cos),
	}
}

// arc appends points along the circle of radius r from angle a0 to a1.
func arc(pts []vg.Point, center vg.Point, r vg.Length, a0, a1 float64) []vg.Point {
	segments := max(2, int(math.Ceil(math.Abs(a1-a0)/arcStep)))
	for k := 0; k <= segments; k++ {
		theta := a0 + (a1-a0)*float64(k)/float64(segments)
		pts = append(pts, polar(center, r, theta))
	}
	return pts
}

func wedgePolygon(center vg.Point, inner vg.Length, s *Slice) []vg.Point {
	pts := arc(nil, center, s.Outer, s.Start, s.End)
	if inner <= 0 {
		return append(pts, center)
	}
	return arc(pts, center, inner, s.End, s.Start)
}

func (ch *Chart) drawWedge(c draw.Canvas, center vg.Point, s *Slice) {
	c.Push()
	defer c.Pop()

	pts := wedgePolygon(center, ch.InnerRadius, s)
	c.FillPolygon(s.Color, c.ClipPolygonXY(pts))
	if ch.LineStyle.Width > 0 {
		c.StrokeLines(ch.LineStyle, c.ClipLinesXY(append(pts, pts[0]))...)
	}
}

// drawLabel writes the slice label glyph by glyph along a circle just outside
// the inner radius. Labels in the lower half run the other way round so they
// read left to right.
func (ch *Chart) drawLabel(c draw.Canvas, center vg.Point, s *Slice) {
	if s.Label == "" {
		return
	}
	sty := ch.LabelStyle
	face := sty.Handler.Cache().Lookup(sty.Font, sty.Font.Size)
	ascent := face.Extents().Ascent
	r := ch.InnerRadius + ascent

	// Shrink the font until the label fits within the slice.
	room := vg.Length(0.9*(s.End-s.Start)) * r
	if w := face.Width(s.Label); w > room {
		size := max(sty.Font.Size*room/w, vg.Points(3))
		sty.Font = font.From(sty.Font, size)
		face = sty.Handler.Cache().Lookup(sty.Font, size)
		ascent = face.Extents().Ascent
	}
	width := face.Width(s.Label)

	mid := s.Mid()
	dir := 1.0
	if math.Cos(mid) < 0 {
		dir = -1
	}

	c.Push()
	defer c.Pop()
	c.SetColor(sty.Color)

	offset := -width / 2
	for _, rn := range s.Label {
		glyph := string(rn)
		gw := face.Width(glyph)
		theta := mid + dir*float64((offset+gw/2)/r)
		rot := -theta
		if dir < 0 {
			rot = math.Pi - theta
		}
		func() {
			c.Push()
			defer c.Pop()
			c.Translate(polar(center, r, theta))
			c.Rotate(rot)
			c.FillString(face, vg.Point{X: -gw / 2, Y: -ascent / 2}, glyph)
		}()
		offset += gw
	}
}

func (ch *Chart) drawValue(c draw.Canvas, center vg.Point, s *Slice) {
	c.Push()
	defer c.Pop()

	mid := s.Mid()
	sty := ch.ValueStyle
	sty.YAlign = draw.YCenter
	sty.XAlign = draw.XLeft
	if math.Sin(mid) < 0 {
		sty.XAlign = draw.XRight
	}
	txt := FormatValue(s.Value, ch.Unit)
	if s.Note != "" {
		txt += "\n" + s.Note
	}
	c.FillText(sty, polar(center, s.Outer+sty.Font.Size/2, mid), txt)
}

func (ch *Chart) drawTitle(c draw.Canvas) {
	c.Push()
	defer c.Pop()

	sty := ch.TitleStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	pt := vg.Point{X: c.Min.X + (c.Max.X-c.Min.X)/2, Y: c.Max.Y}
	c.FillText(sty, pt, ch.Title)
}
