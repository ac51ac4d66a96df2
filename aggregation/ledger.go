package aggregation

import (
	"errors"

	"freshsoda/model"
	"freshsoda/units"
)

// ErrNoStockLoaded signals that no stock load exists for the (route, date).
// Positions default to zero start; callers must surface this to the operator
// rather than treat it as "nothing sellable" silently.
var ErrNoStockLoaded = errors.New("no stock load recorded for route and date")

// StartPosition is a product's loaded quantity in both units.
type StartPosition struct {
	Box int `json:"box"`
	Pcs int `json:"pcs"`
}

// StartPositions projects the stock load into per-product start positions.
// Products absent from the load default to {0,0}. A nil load yields an empty
// map and ErrNoStockLoaded.
func StartPositions(load *model.StockLoad) (map[string]StartPosition, error) {
	starts := make(map[string]StartPosition)
	if load == nil {
		return starts, ErrNoStockLoaded
	}
	for _, e := range load.Entries {
		pos := starts[e.ProductID]
		unit, _ := units.Normalize(e.Unit)
		if unit == units.UnitBox {
			pos.Box += e.Quantity
		} else {
			pos.Pcs += e.Quantity
		}
		starts[e.ProductID] = pos
	}
	return starts, nil
}
