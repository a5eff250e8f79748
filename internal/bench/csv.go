// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads records from CSV data whose first three columns are the
// language, the benchmark name and the time taken. A leading row whose time
// column is not a number is taken to be a header and skipped. Columns past the
// third are ignored. Lines starting with '#' are comments.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var records []Record
	first := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		header := first
		first = false

		if len(row) < 3 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 3", ErrMalformed, line, len(row))
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			if header {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: time %q is not a number", ErrMalformed, line, row[2])
		}
		records = append(records, Record{
			Language:  strings.TrimSpace(row[0]),
			Benchmark: strings.TrimSpace(row[1]),
			Time:      t,
		})
	}
	return records, nil
}
