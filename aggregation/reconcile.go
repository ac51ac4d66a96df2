package aggregation

import (
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"freshsoda/model"
	"freshsoda/units"
)

// BuildPositions reconciles the stock load against the sale records for one
// (route, date) and returns one row per product that was stocked or sold,
// ordered by product name (case-insensitive, stable).
//
// Remaining stock is clamped at zero: a historical oversell (a race, or data
// recorded before the counter guard existed) reports zero remaining with the
// true shortfall kept in DeficitPieces and logged. Products with a
// non-positive ratio are excluded from the result and logged; one bad product
// never fails the whole report.
//
// The returned error is ErrNoStockLoaded when the load is nil; the rows are
// still valid (all-zero starts) and callers must surface the condition.
func BuildPositions(load *model.StockLoad, records []model.SaleRecord, catalog map[string]model.Product, logger *zap.SugaredLogger) ([]model.StockPosition, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	starts, loadErr := StartPositions(load)
	if loadErr != nil && !errors.Is(loadErr, ErrNoStockLoaded) {
		return nil, loadErr
	}
	sold := FoldSales(records, catalog, logger)

	productIDs := make([]string, 0, len(starts)+len(sold))
	seen := make(map[string]bool, len(starts)+len(sold))
	for id := range starts {
		productIDs = append(productIDs, id)
		seen[id] = true
	}
	for id := range sold {
		if !seen[id] {
			productIDs = append(productIDs, id)
		}
	}

	rows := make([]model.StockPosition, 0, len(productIDs))
	for _, id := range productIDs {
		start := starts[id]
		totals := sold[id]
		if start == (StartPosition{}) && totals.Box == 0 && totals.Pcs == 0 {
			// Not stocked, not sold that day: excluded for signal-to-noise.
			continue
		}

		product, known := catalog[id]
		if !known {
			logger.Warnw("product missing from catalog, using defaults", "productId", id)
			product = model.Product{ID: id, Name: id}
		}
		ppb := product.Ratio()

		startPieces, err := totalPieces(start.Box, start.Pcs, ppb)
		if err != nil {
			logger.Warnw("invalid pieces-per-box ratio, product excluded from reconciliation",
				"productId", id, "piecesPerBox", ppb)
			continue
		}
		soldPieces, _ := totalPieces(totals.Box, totals.Pcs, ppb)

		remaining := startPieces - soldPieces
		deficit := 0
		if remaining < 0 {
			deficit = -remaining
			remaining = 0
			logger.Warnw("negative reconciliation clamped to zero",
				"productId", id, "startPieces", startPieces, "soldPieces", soldPieces, "deficitPieces", deficit)
		}
		remBox, remPcs, _ := units.FromPieces(remaining, ppb)

		rows = append(rows, model.StockPosition{
			ProductID:     id,
			ProductName:   product.Name,
			StartBox:      start.Box,
			StartPcs:      start.Pcs,
			SoldBox:       totals.Box,
			SoldPcs:       totals.Pcs,
			RemainingBox:  remBox,
			RemainingPcs:  remPcs,
			Revenue:       totals.Revenue,
			DeficitPieces: deficit,
		})
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := coll.CompareString(rows[i].ProductName, rows[j].ProductName); c != 0 {
			return c < 0
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	return rows, loadErr
}

func totalPieces(box, pcs, ppb int) (int, error) {
	boxPieces, err := units.ToPieces(box, units.UnitBox, ppb)
	if err != nil {
		return 0, err
	}
	return boxPieces + pcs, nil
}
