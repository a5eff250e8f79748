// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package palette assigns a stable fill color to every language appearing in
// a data set.
package palette

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/petenewcomb/sectorchart"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/palette/brewer"
)

// DefaultScheme is the brewer qualitative scheme used when no named colors
// are configured.
const DefaultScheme = "Paired"

// Options select where a Map draws its colors from.
type Options struct {
	// Names, if not empty, lists SVG color names (such as "steelblue")
	// assigned to languages in order.
	Names []string

	// Scheme names a brewer qualitative scheme, used when Names is empty.
	Scheme string
}

// Map associates labels with colors. Labels are assigned colors in the order
// they are given to New, so the same input always yields the same colors. If
// the palette runs out, the remaining labels have no color and looking them
// up fails.
type Map struct {
	labels []string
	colors map[string]color.Color
}

// New builds a Map for languages.
func New(languages []string, opts Options) (*Map, error) {
	colors, err := paletteColors(len(languages), opts)
	if err != nil {
		return nil, err
	}
	m := &Map{colors: make(map[string]color.Color, len(languages))}
	for _, lang := range languages {
		if _, ok := m.colors[lang]; ok {
			continue
		}
		if len(m.labels) == len(colors) {
			break
		}
		m.colors[lang] = colors[len(m.labels)]
		m.labels = append(m.labels, lang)
	}
	return m, nil
}

func paletteColors(n int, opts Options) ([]color.Color, error) {
	if len(opts.Names) > 0 {
		colors := make([]color.Color, len(opts.Names))
		for i, name := range opts.Names {
			c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("unknown color name %q", name)
			}
			colors[i] = c
		}
		return colors, nil
	}

	scheme := opts.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	sizes, ok := brewer.QualitativePalettes[scheme]
	if !ok {
		return nil, fmt.Errorf("unknown qualitative color scheme %q", scheme)
	}
	largest := 0
	for size := range sizes {
		largest = max(largest, size)
	}
	// Brewer schemes start at three colors.
	p, err := brewer.GetPalette(brewer.TypeQualitative, scheme, min(max(n, 3), largest))
	if err != nil {
		return nil, err
	}
	return p.Colors(), nil
}

// Color returns the color assigned to label.
func (m *Map) Color(label string) (color.Color, error) {
	c, ok := m.colors[label]
	if !ok {
		return nil, fmt.Errorf("%w %q", sectorchart.ErrUnknownLabel, label)
	}
	return c, nil
}

// Remove drops label from the map.
func (m *Map) Remove(label string) {
	if _, ok := m.colors[label]; !ok {
		return
	}
	delete(m.colors, label)
	m.labels = slices.DeleteFunc(m.labels, func(l string) bool { return l == label })
}

// Labels returns the mapped labels in assignment order.
func (m *Map) Labels() []string {
	return slices.Clone(m.labels)
}

// Len returns the number of mapped labels.
func (m *Map) Len() int {
	return len(m.labels)
}
