package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RememberShopNameInTx records that a shop was sold to, refreshing its
// last-used timestamp. Update-then-insert keeps it portable across drivers.
func RememberShopNameInTx(tx *sqlx.Tx, name, usedAt string) error {
	if name == "" {
		return nil
	}
	res, err := tx.Exec(`UPDATE shop_names SET last_used_at = ? WHERE name = ?`, usedAt, name)
	if err != nil {
		return fmt.Errorf("failed to update shop name %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	if _, err := tx.Exec(`INSERT INTO shop_names (name, last_used_at) VALUES (?, ?)`, name, usedAt); err != nil {
		return fmt.Errorf("failed to insert shop name %q: %w", name, err)
	}
	return nil
}

// ListShopNames returns known shop names, most recently used first.
func ListShopNames(db *sqlx.DB, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	var names []string
	err := db.Select(&names, `SELECT name FROM shop_names ORDER BY last_used_at DESC, name LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop names: %w", err)
	}
	return names, nil
}
