package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"freshsoda/model"
)

const productColumns = `id, name, box_price,
	COALESCE(pcs_price, 0) AS pcs_price,
	COALESCE(pieces_per_box, 0) AS pieces_per_box`

// GetProductByID returns the catalog row, or nil when unknown.
func GetProductByID(db *sqlx.DB, id string) (*model.Product, error) {
	var p model.Product
	err := db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &p, nil
}

// ListProducts returns the whole catalog ordered by name.
func ListProducts(db *sqlx.DB) ([]model.Product, error) {
	var products []model.Product
	err := db.Select(&products, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetCatalogMap loads the catalog keyed by product id for reconciliation.
func GetCatalogMap(db *sqlx.DB) (map[string]model.Product, error) {
	products, err := ListProducts(db)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]model.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog, nil
}

// UpsertProductInTx inserts or refreshes one catalog row. Written as
// update-then-insert so it runs unchanged on sqlite and mysql.
func UpsertProductInTx(tx *sqlx.Tx, p model.Product) error {
	res, err := tx.Exec(`UPDATE products SET name = ?, box_price = ?, pcs_price = ?, pieces_per_box = ? WHERE id = ?`,
		p.Name, p.BoxPrice, p.PcsPrice, p.PiecesPerBox, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = tx.Exec(`INSERT INTO products (id, name, box_price, pcs_price, pieces_per_box) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.BoxPrice, p.PcsPrice, p.PiecesPerBox)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
	}
	return nil
}
