package units

import (
	"errors"
	"fmt"
)

// The two units of sale. A box holds piecesPerBox individual pieces.
const (
	UnitBox = "box"
	UnitPcs = "pcs"
)

// ErrInvalidRatio reports a non-positive pieces-per-box ratio. Division by
// such a ratio is a defect, not a valid state.
var ErrInvalidRatio = errors.New("pieces-per-box ratio must be positive")

// Normalize maps a raw unit string to a canonical unit. Unknown units fall
// back to pcs for legacy-data compatibility; ok is false so callers can log
// the malformed line instead of dropping it.
func Normalize(unit string) (canonical string, ok bool) {
	switch unit {
	case UnitBox:
		return UnitBox, true
	case UnitPcs:
		return UnitPcs, true
	default:
		return UnitPcs, false
	}
}

// ToPieces converts a quantity in the given unit to pieces.
func ToPieces(quantity int, unit string, piecesPerBox int) (int, error) {
	if piecesPerBox <= 0 {
		return 0, fmt.Errorf("unit %q: %w", unit, ErrInvalidRatio)
	}
	if unit == UnitBox {
		return quantity * piecesPerBox, nil
	}
	return quantity, nil
}

// FromPieces splits a piece count into whole boxes and loose pieces such that
// box*piecesPerBox + pcs == totalPieces, pcs < piecesPerBox, both >= 0 for
// non-negative input.
func FromPieces(totalPieces, piecesPerBox int) (box, pcs int, err error) {
	if piecesPerBox <= 0 {
		return 0, 0, ErrInvalidRatio
	}
	return totalPieces / piecesPerBox, totalPieces % piecesPerBox, nil
}
