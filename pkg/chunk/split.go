// Package chunk splits index spaces into contiguous near-equal ranges
// for fan-out processing.
package chunk

import (
	"fmt"

	"github.com/jzx17/textpool/pkg/types"
)

// Range is a half-open index interval [Start, End) into an input sequence.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range
func (r Range) Len() int {
	return r.End - r.Start
}

// String returns the string representation of the range
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Split divides [0, n) into contiguous non-overlapping ranges whose sizes
// differ by at most one, with the remainder distributed to the first ranges.
// parts is clamped to [1, n] so no empty ranges are produced; requesting
// more parts than elements yields at most n ranges.
//
// parts <= 0 or n < 0 is an input-contract violation and returns
// types.ErrInvalidRange. Split(0, parts) returns an empty slice.
func Split(n, parts int) ([]Range, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: parts must be positive, got %d", types.ErrInvalidRange, parts)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: length must be non-negative, got %d", types.ErrInvalidRange, n)
	}
	if n == 0 {
		return []Range{}, nil
	}
	if parts > n {
		parts = n
	}

	size := n / parts
	remainder := n % parts

	ranges := make([]Range, parts)
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < remainder {
			end++
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	return ranges, nil
}
