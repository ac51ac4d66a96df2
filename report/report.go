// Package report rolls per-product reconciliation rows into the route/day
// summary payload consumed by the summary screen and the receipt renderer.
package report

import (
	"math"

	"go.uber.org/zap"

	"freshsoda/model"
)

// Build sums the position rows into per-unit totals and cross-checks the row
// revenue against the recorded sale totals. Box and pcs totals are summed
// independently; they are dimensionless tallies across products with
// different pieces-per-box ratios.
func Build(routeID, date string, stockLoaded bool, rows []model.StockPosition, records []model.SaleRecord, logger *zap.SugaredLogger) model.Summary {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := model.Summary{
		RouteID:     routeID,
		Date:        date,
		StockLoaded: stockLoaded,
		Rows:        rows,
		SaleCount:   len(records),
	}
	for _, r := range rows {
		s.Totals.StartBox += r.StartBox
		s.Totals.StartPcs += r.StartPcs
		s.Totals.SoldBox += r.SoldBox
		s.Totals.SoldPcs += r.SoldPcs
		s.Totals.RemainingBox += r.RemainingBox
		s.Totals.RemainingPcs += r.RemainingPcs
		s.GrandTotalRevenue += r.Revenue
	}
	for _, rec := range records {
		s.RecordedTotal += rec.TotalAmount
	}

	if math.Abs(s.GrandTotalRevenue-s.RecordedTotal) > 0.005 {
		logger.Warnw("summary revenue does not match recorded sale totals",
			"routeId", routeID, "date", date,
			"rowRevenue", s.GrandTotalRevenue, "recordedTotal", s.RecordedTotal)
	}
	return s
}
