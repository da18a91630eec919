package block

import (
	"fmt"

	"github.com/arloliu/blockpack/errs"
)

// DeltaEncode writes the delta of every src value from its predecessor into dst and
// returns the largest delta.
//
// The predecessor of src[0] is offset; the predecessor of src[i] is src[i-1]. src is
// never modified, and dst may alias src only if the caller no longer needs the input.
//
// Parameters:
//   - dst: Destination for deltas, at least len(src) long
//   - src: Non-decreasing values
//   - offset: Value preceding src[0]
//
// Returns:
//   - uint32: Maximum delta (0 for empty src)
//   - error: errs.ErrLengthMismatch if dst is too short, errs.ErrPrecedenceViolation
//     if src decreases or src[0] < offset
//
// Example:
//
//	deltas := make([]uint32, 4)
//	max, _ := DeltaEncode(deltas, []uint32{5, 7, 7, 10}, 5)
//	// deltas = [0, 2, 0, 3], max = 3
func DeltaEncode(dst, src []uint32, offset uint32) (uint32, error) {
	if len(dst) < len(src) {
		return 0, fmt.Errorf("%w: dst has %d slots for %d values", errs.ErrLengthMismatch, len(dst), len(src))
	}

	var maxDelta uint32
	prev := offset
	for i, v := range src {
		if v < prev {
			return 0, fmt.Errorf("%w: value %d at index %d is below predecessor %d",
				errs.ErrPrecedenceViolation, v, i, prev)
		}

		delta := v - prev
		if delta > maxDelta {
			maxDelta = delta
		}
		dst[i] = delta
		prev = v
	}

	return maxDelta, nil
}

// DeltaDecode rebuilds absolute values from deltas, the inverse of DeltaEncode.
//
// Returns errs.ErrValueOverflow if the running sum exceeds the uint32 range, which only
// happens with corrupted input.
func DeltaDecode(dst, deltas []uint32, offset uint32) error {
	if len(dst) < len(deltas) {
		return fmt.Errorf("%w: dst has %d slots for %d deltas", errs.ErrLengthMismatch, len(dst), len(deltas))
	}

	for i, delta := range deltas {
		next := offset + delta
		if next < offset {
			return fmt.Errorf("%w: delta %d at index %d overflows offset %d", errs.ErrValueOverflow, delta, i, offset)
		}
		dst[i] = next
		offset = next
	}

	return nil
}
