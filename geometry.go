// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart

import "math"

// AreaOfSector returns the area of the annular sector between the circles of
// radius inner and outer, spanning the angles start to end (in radians).
func AreaOfSector(inner, outer, start, end float64) float64 {
	half := (end - start) / 2
	// The conversions stop the products being fused, so equal radii give
	// exactly zero.
	return half * (float64(outer*outer) - float64(inner*inner))
}

// OuterRadiusGivenArea is the inverse of AreaOfSector: it returns the outer
// radius an annular sector with the given inner radius and angular span needs
// in order to cover area. For area >= 0, inner >= 0 and end > start the result
// is finite and not less than inner. Negative areas are not checked.
func OuterRadiusGivenArea(area, inner, start, end float64) float64 {
	return math.Sqrt(2*area/(end-start) + inner*inner)
}

// Rescale linearly maps v from [fromMin, fromMax] onto [toMin, toMax]. When the
// source range is empty every value maps to toMax.
func Rescale(v, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		return toMax
	}
	return toMin + (v-fromMin)*(toMax-toMin)/(fromMax-fromMin)
}
