package aggregation

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/database"
	"freshsoda/model"
)

// LoadDay fetches everything needed to reconcile one (route, date): the
// catalog, the stock load, the sale records, and the derived position rows.
// stockLoaded is false when no load exists; the rows are then all-zero-start
// and the caller must surface the condition to the operator.
func LoadDay(db *sqlx.DB, routeID, date string, logger *zap.SugaredLogger) (rows []model.StockPosition, records []model.SaleRecord, stockLoaded bool, err error) {
	catalog, err := database.GetCatalogMap(db)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load catalog: %w", err)
	}
	load, err := database.GetStockLoad(db, routeID, date)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load stock load: %w", err)
	}
	records, err = database.ListSaleRecords(db, routeID, date)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load sale records: %w", err)
	}

	rows, err = BuildPositions(load, records, catalog, logger)
	if errors.Is(err, ErrNoStockLoaded) {
		if logger != nil {
			logger.Warnw("no stock loaded for route and date", "routeId", routeID, "date", date)
		}
		return rows, records, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return rows, records, true, nil
}

// GetPositions is LoadDay without the raw records, for callers that only
// need the reconciled rows.
func GetPositions(db *sqlx.DB, routeID, date string, logger *zap.SugaredLogger) ([]model.StockPosition, bool, error) {
	rows, _, stockLoaded, err := LoadDay(db, routeID, date, logger)
	return rows, stockLoaded, err
}
