package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SaveSummaryArchive stores the serialized day summary for (route, date),
// replacing any earlier snapshot. The summary is a pure function of
// append-only inputs, so a later snapshot only adds information.
func SaveSummaryArchive(db *sqlx.DB, routeID, date string, payload []byte, archivedAt string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM summary_archives WHERE route_id = ? AND sale_date = ?`, routeID, date); err != nil {
		return fmt.Errorf("failed to clear old archive for %s/%s: %w", routeID, date, err)
	}
	if _, err := tx.Exec(`INSERT INTO summary_archives (route_id, sale_date, payload, archived_at) VALUES (?, ?, ?, ?)`,
		routeID, date, payload, archivedAt); err != nil {
		return fmt.Errorf("failed to insert archive for %s/%s: %w", routeID, date, err)
	}
	return tx.Commit()
}

// GetSummaryArchive returns the stored snapshot, or nil when none exists.
func GetSummaryArchive(db *sqlx.DB, routeID, date string) ([]byte, error) {
	var payload []byte
	err := db.Get(&payload, `SELECT payload FROM summary_archives WHERE route_id = ? AND sale_date = ?`, routeID, date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archive for %s/%s: %w", routeID, date, err)
	}
	return payload, nil
}
