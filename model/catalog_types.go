package model

import "math"

// DefaultPiecesPerBox is used when a product carries no ratio and none can be
// inferred from its prices.
const DefaultPiecesPerBox = 24

// Product is one row of the externally owned catalog. Immutable for the
// duration of a reconciliation.
type Product struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	BoxPrice     float64 `db:"box_price" json:"boxPrice"`
	PcsPrice     float64 `db:"pcs_price" json:"pcsPrice"`
	PiecesPerBox int     `db:"pieces_per_box" json:"piecesPerBox"`
}

// Ratio returns the effective pieces-per-box for the product. A stored
// positive value wins; zero means unspecified and is inferred from the price
// ratio when possible, else defaulted to 24. A stored negative value is
// returned as-is: it is invalid data and the reconciliation must exclude the
// product rather than guess.
func (p Product) Ratio() int {
	if p.PiecesPerBox != 0 {
		return p.PiecesPerBox
	}
	if p.BoxPrice > 0 && p.PcsPrice > 0 {
		if r := int(math.Round(p.BoxPrice / p.PcsPrice)); r >= 1 {
			return r
		}
	}
	return DefaultPiecesPerBox
}

// PriceFor returns the catalog price for the given unit. The pcs price is
// derived from the box price when the catalog row has none.
func (p Product) PriceFor(unit string) float64 {
	if unit == "box" {
		return p.BoxPrice
	}
	if p.PcsPrice > 0 {
		return p.PcsPrice
	}
	if r := p.Ratio(); r > 0 {
		return p.BoxPrice / float64(r)
	}
	return 0
}
