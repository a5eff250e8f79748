// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sectorchart

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrUnknownLabel is returned when a chart label has no entry in the color
// lookup.
const ErrUnknownLabel = constError("label has no color")

const ErrNoValues = constError("chart has no values")
const ErrLabelCount = constError("label and value counts differ")
const ErrNoRoom = constError("tile too small for chart")
