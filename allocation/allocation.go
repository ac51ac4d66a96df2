// Package allocation implements the live clamp applied while a sale draft is
// being edited: the combined box and pcs quantities for a product may never
// exceed the stock remaining after all saved sales.
package allocation

import (
	"freshsoda/units"
)

// Draft tracks the two pending quantities of one product in the active,
// unsaved sale. Remaining stock is the reconciled position against records
// saved so far, excluding this draft.
type Draft struct {
	piecesPerBox int
	remainingBox int
	remainingPcs int
	pendingBox   int
	pendingPcs   int
}

// NewDraft builds a draft against the given remaining stock.
func NewDraft(remainingBox, remainingPcs, piecesPerBox int) (*Draft, error) {
	if piecesPerBox <= 0 {
		return nil, units.ErrInvalidRatio
	}
	return &Draft{
		piecesPerBox: piecesPerBox,
		remainingBox: remainingBox,
		remainingPcs: remainingPcs,
	}, nil
}

// SetPending seeds the draft with quantities already entered, re-clamping
// them against remaining stock (pcs first, then box against what pcs left).
func (d *Draft) SetPending(box, pcs int) {
	d.SetQuantity(units.UnitPcs, pcs)
	d.SetQuantity(units.UnitBox, box)
}

// Pending returns the current accepted quantities of both units.
func (d *Draft) Pending() (box, pcs int) {
	return d.pendingBox, d.pendingPcs
}

// MaxFor returns the largest quantity currently acceptable for the unit,
// given the other unit's pending pieces.
func (d *Draft) MaxFor(unit string) int {
	total := d.remainingBox*d.piecesPerBox + d.remainingPcs
	if unit == units.UnitBox {
		return clampNonNegative((total - d.pendingPcs) / d.piecesPerBox)
	}
	return clampNonNegative(total - d.pendingBox*d.piecesPerBox)
}

// SetQuantity stores the requested quantity for the unit, silently clamped to
// [0, MaxFor(unit)], and returns the accepted value. Callers must display the
// returned value, not the requested one. Setting one unit re-clamps the other
// unit's already-accepted quantity, since shrinking availability on one side
// can force a retroactive reduction on the other.
//
// The result is a pure function of (remaining, other pending, requested):
// repeating a call with unchanged state returns the same accepted value.
func (d *Draft) SetQuantity(unit string, requested int) (accepted int) {
	u, _ := units.Normalize(unit)
	accepted = clamp(requested, d.MaxFor(u))
	if u == units.UnitBox {
		d.pendingBox = accepted
		d.pendingPcs = clamp(d.pendingPcs, d.MaxFor(units.UnitPcs))
	} else {
		d.pendingPcs = accepted
		d.pendingBox = clamp(d.pendingBox, d.MaxFor(units.UnitBox))
	}
	return accepted
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
