// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sectorchart draws radial "sector charts" comparing a handful of
// measurements, typically the run time of one benchmark across several
// language implementations.
//
// Each measurement gets an equal angular slice of a circle. The slice is
// filled as an annular wedge whose outer radius is chosen so that the wedge's
// area, not its radius, is proportional to the measurement. Radii are then
// rescaled so the largest wedge exactly reaches the edge of the space
// available to the chart.
//
// Charts draw onto a gonum.org/v1/plot/vg/draw.Canvas, so any vg backend (PDF,
// SVG, PNG, ...) can be used. All drawing state changes are scoped with
// Push/Pop, leaving the caller's canvas state untouched.
package sectorchart

//go:generate go run ./internal/cmd/sectorchart --no-preview --input testdata/benchmarks.csv --output sector_charts.pdf
