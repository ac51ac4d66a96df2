package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"freshsoda/model"
	"freshsoda/units"
)

// ErrStockLoadExists rejects a second load for the same (route, date). The
// load is append-only for the day and unique by that composite key.
var ErrStockLoadExists = errors.New("stock load already exists for route and date")

// GetStockLoad returns the load with its entries, or nil when none exists.
func GetStockLoad(db *sqlx.DB, routeID, date string) (*model.StockLoad, error) {
	var load model.StockLoad
	err := db.Get(&load, `SELECT id, route_id, load_date, created_at FROM stock_loads WHERE route_id = ? AND load_date = ?`,
		routeID, date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock load for %s/%s: %w", routeID, date, err)
	}

	err = db.Select(&load.Entries, `SELECT product_id, unit, quantity FROM stock_load_entries WHERE load_id = ? ORDER BY product_id, unit`,
		load.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock load entries for %s/%s: %w", routeID, date, err)
	}
	return &load, nil
}

// InsertStockLoadInTx creates the load, its entries, and the per-product sold
// counters that guard every later sale insert. The counter rows carry the
// start position converted to pieces, so the oversell check is a single
// guarded UPDATE at sale time.
func InsertStockLoadInTx(tx *sqlx.Tx, load *model.StockLoad, catalog map[string]model.Product) error {
	var existing int
	err := tx.Get(&existing, `SELECT COUNT(*) FROM stock_loads WHERE route_id = ? AND load_date = ?`,
		load.RouteID, load.Date)
	if err != nil {
		return fmt.Errorf("failed to check stock load existence: %w", err)
	}
	if existing > 0 {
		return ErrStockLoadExists
	}

	res, err := tx.Exec(`INSERT INTO stock_loads (route_id, load_date, created_at) VALUES (?, ?, ?)`,
		load.RouteID, load.Date, load.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stock load: %w", err)
	}
	loadID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get stock load id: %w", err)
	}
	load.ID = loadID

	startPieces := make(map[string]int)
	for _, e := range load.Entries {
		if e.Quantity < 0 {
			return fmt.Errorf("negative quantity for product %s", e.ProductID)
		}
		unit, _ := units.Normalize(e.Unit)
		_, err := tx.Exec(`INSERT INTO stock_load_entries (load_id, product_id, unit, quantity) VALUES (?, ?, ?, ?)`,
			loadID, e.ProductID, unit, e.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert stock load entry for %s: %w", e.ProductID, err)
		}

		ppb := catalog[e.ProductID].Ratio()
		if ppb <= 0 {
			ppb = model.DefaultPiecesPerBox
		}
		pieces, err := units.ToPieces(e.Quantity, unit, ppb)
		if err != nil {
			return fmt.Errorf("failed to convert entry for %s: %w", e.ProductID, err)
		}
		startPieces[e.ProductID] += pieces
	}

	for productID, pieces := range startPieces {
		_, err := tx.Exec(`INSERT INTO sold_counters (route_id, sale_date, product_id, start_pieces, sold_pieces) VALUES (?, ?, ?, ?, 0)`,
			load.RouteID, load.Date, productID, pieces)
		if err != nil {
			return fmt.Errorf("failed to seed sold counter for %s: %w", productID, err)
		}
	}
	return nil
}
