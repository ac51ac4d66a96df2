package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"freshsoda/model"
)

// ErrInsufficientStock rejects a sale whose lines would push a product's sold
// pieces past its loaded pieces. Raised by the guarded counter update, inside
// the same transaction as the sale insert, so two clients selling the last
// unit concurrently cannot both commit.
var ErrInsufficientStock = errors.New("insufficient remaining stock")

// ErrStockNotLoaded rejects a sale for a product with no counter row, which
// means no stock load exists for the (route, date).
var ErrStockNotLoaded = errors.New("no stock load for route and date")

// ConsumeStockInTx atomically adds pieces to the product's sold counter,
// refusing the update when it would exceed the loaded start.
func ConsumeStockInTx(tx *sqlx.Tx, routeID, date, productID string, pieces int) error {
	res, err := tx.Exec(`UPDATE sold_counters
		SET sold_pieces = sold_pieces + ?
		WHERE route_id = ? AND sale_date = ? AND product_id = ? AND sold_pieces + ? <= start_pieces`,
		pieces, routeID, date, productID, pieces)
	if err != nil {
		return fmt.Errorf("failed to update sold counter for %s: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read sold counter result for %s: %w", productID, err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM sold_counters WHERE route_id = ? AND sale_date = ? AND product_id = ?`,
		routeID, date, productID); err != nil {
		return fmt.Errorf("failed to check sold counter for %s: %w", productID, err)
	}
	if exists == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrStockNotLoaded)
	}
	return fmt.Errorf("product %s: %w", productID, ErrInsufficientStock)
}

// NextReceiptNumberInTx derives the next "SA" + YYMMDD + 5-digit receipt
// number from the day's maximum inside the insert transaction.
func NextReceiptNumberInTx(tx *sqlx.Tx, date string) (string, error) {
	prefix := "SA" + strings.ReplaceAll(date, "-", "")[2:]

	var last string
	err := tx.Get(&last, `SELECT receipt_number FROM sale_records WHERE receipt_number LIKE ? ORDER BY receipt_number DESC LIMIT 1`,
		prefix+"%")
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to get last receipt number: %w", err)
	}
	lastSeq := 0
	if len(last) == len(prefix)+5 {
		lastSeq, _ = strconv.Atoi(last[len(prefix):])
	}
	return fmt.Sprintf("%s%05d", prefix, lastSeq+1), nil
}

// InsertSaleInTx persists the record and its lines. Callers are expected to
// have consumed stock for every line in the same transaction first.
func InsertSaleInTx(tx *sqlx.Tx, rec *model.SaleRecord) error {
	_, err := tx.Exec(`INSERT INTO sale_records (id, receipt_number, route_id, sale_date, shop_name, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ReceiptNumber, rec.RouteID, rec.Date, rec.ShopName, rec.TotalAmount, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale record %s: %w", rec.ReceiptNumber, err)
	}
	for i, line := range rec.Lines {
		_, err := tx.Exec(`INSERT INTO sale_lines (sale_id, line_no, product_id, unit, quantity, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i+1, line.ProductID, line.Unit, line.Quantity, line.UnitPrice, line.LineTotal)
		if err != nil {
			return fmt.Errorf("failed to insert sale line %d of %s: %w", i+1, rec.ReceiptNumber, err)
		}
	}
	return nil
}

// ListSaleRecords returns all records for the (route, date) with their lines,
// oldest first. A single unreadable record fails the whole read; a silently
// incomplete day of sales is worse than a visible failure.
func ListSaleRecords(db *sqlx.DB, routeID, date string) ([]model.SaleRecord, error) {
	var records []model.SaleRecord
	err := db.Select(&records, `SELECT id, receipt_number, route_id, sale_date, shop_name, total_amount, created_at
		FROM sale_records WHERE route_id = ? AND sale_date = ? ORDER BY created_at, receipt_number`,
		routeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale records for %s/%s: %w", routeID, date, err)
	}

	for i := range records {
		err := db.Select(&records[i].Lines, `SELECT product_id, unit, quantity, unit_price, line_total
			FROM sale_lines WHERE sale_id = ? ORDER BY line_no`,
			records[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list sale lines for %s: %w", records[i].ReceiptNumber, err)
		}
	}
	return records, nil
}
