package aggregation

import (
	"go.uber.org/zap"

	"freshsoda/model"
	"freshsoda/units"
)

// SoldTotals is a product's consumption and revenue summed over every sale
// line of every record for the (route, date).
type SoldTotals struct {
	Box     int     `json:"box"`
	Pcs     int     `json:"pcs"`
	Revenue float64 `json:"revenue"`
}

// FoldSales aggregates sale records into per-product sold totals. The fold is
// a sum over a set: grouping and order of the input records do not affect the
// result.
//
// Lines with an unknown unit are counted as pcs (legacy records predate unit
// validation) and logged, never dropped. Line revenue uses the line's own
// total when present, else quantity * unitPrice, else the product's current
// catalog price for the unit. Historical records may lack the later-added
// fields, so all three tiers must stay.
func FoldSales(records []model.SaleRecord, catalog map[string]model.Product, logger *zap.SugaredLogger) map[string]SoldTotals {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	sold := make(map[string]SoldTotals)
	for _, rec := range records {
		for _, line := range rec.Lines {
			unit, ok := units.Normalize(line.Unit)
			if !ok {
				logger.Warnw("malformed sale line unit, counted as pcs",
					"receipt", rec.ReceiptNumber, "productId", line.ProductID, "unit", line.Unit)
			}

			totals := sold[line.ProductID]
			if unit == units.UnitBox {
				totals.Box += line.Quantity
			} else {
				totals.Pcs += line.Quantity
			}
			totals.Revenue += lineRevenue(line, unit, catalog)
			sold[line.ProductID] = totals
		}
	}
	return sold
}

func lineRevenue(line model.SaleLine, unit string, catalog map[string]model.Product) float64 {
	if line.LineTotal > 0 {
		return line.LineTotal
	}
	if line.UnitPrice > 0 {
		return float64(line.Quantity) * line.UnitPrice
	}
	if p, ok := catalog[line.ProductID]; ok {
		return float64(line.Quantity) * p.PriceFor(unit)
	}
	return 0
}
