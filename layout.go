// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart

import "math"

// RowsColumns returns a near-square grid able to hold n items: the number of
// rows is floor(sqrt(n)) and the number of columns is whatever is then needed
// to fit all n. RowsColumns panics if n is not positive.
func RowsColumns(n int) (rows, cols int) {
	if n <= 0 {
		panic("sectorchart: item count must be positive")
	}
	rows = int(math.Floor(math.Sqrt(float64(n))))
	cols = (n + rows - 1) / rows
	return rows, cols
}
