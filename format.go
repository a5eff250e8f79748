// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart

import (
	"fmt"
	"math"

	"golang.org/x/perf/benchunit"
)

// FormatValue renders a raw measurement for printing next to its wedge, using
// SI prefixes and the given unit suffix.
func FormatValue(v float64, unit string) string {
	var s string
	switch {
	case v == 0:
		s = "0"
	case math.Abs(v) >= 1000 && math.Abs(v) < 10000:
		s = fmt.Sprintf("%.0f", v)
	default:
		s = benchunit.Scale(v, benchunit.Decimal)
	}
	return s + unit
}
