// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/petenewcomb/sectorchart/internal/bench"
	"gonum.org/v1/plot/vg/draw"

	// Output formats selectable by file extension.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
	_ "gonum.org/v1/plot/vg/vgtex"
)

// DefaultFormat is used for paths without an extension.
const DefaultFormat = "pdf"

// Format returns the output format implied by path's extension.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return DefaultFormat
	}
	return ext
}

// WriteFile renders groups and writes the result to path, in the format
// named by the path's extension.
func WriteFile(path string, groups []bench.Group, colors Colors, opts Options) (Stats, error) {
	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, Format(path))
	if err != nil {
		return Stats{}, err
	}
	stats, err := Render(c, groups, colors, opts)
	if err != nil {
		return stats, err
	}

	f, err := os.Create(path)
	if err != nil {
		return stats, err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return stats, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return stats, fmt.Errorf("closing %s: %w", path, err)
	}
	return stats, nil
}
