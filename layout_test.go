// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart_test

import (
	"testing"

	"github.com/petenewcomb/sectorchart"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRowsColumns(t *testing.T) {
	chk := require.New(t)

	for _, tc := range []struct {
		n, rows, cols int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
		{16, 4, 4},
		{17, 4, 5},
	} {
		rows, cols := sectorchart.RowsColumns(tc.n)
		chk.Equal(tc.rows, rows, "rows for %d", tc.n)
		chk.Equal(tc.cols, cols, "columns for %d", tc.n)
	}
}

func TestRowsColumnsHoldsAllItems(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10_000).Draw(t, "n")
		rows, cols := sectorchart.RowsColumns(n)
		require.GreaterOrEqual(t, rows*cols, n)
		require.LessOrEqual(t, rows, cols)
		// No spare column.
		require.Less(t, rows*(cols-1), n)
	})
}

func TestRowsColumnsPanicsOnEmpty(t *testing.T) {
	require.Panics(t, func() { sectorchart.RowsColumns(0) })
	require.Panics(t, func() { sectorchart.RowsColumns(-3) })
}
