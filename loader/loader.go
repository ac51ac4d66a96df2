package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"

	"freshsoda/database"
	"freshsoda/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	box_price REAL NOT NULL DEFAULT 0,
	pcs_price REAL,
	pieces_per_box INTEGER
);

CREATE TABLE IF NOT EXISTS stock_loads (
	id INTEGER PRIMARY KEY,
	route_id TEXT NOT NULL,
	load_date TEXT NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE (route_id, load_date)
);

CREATE TABLE IF NOT EXISTS stock_load_entries (
	load_id INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	unit TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	UNIQUE (load_id, product_id, unit)
);

CREATE TABLE IF NOT EXISTS sale_records (
	id TEXT PRIMARY KEY,
	receipt_number TEXT NOT NULL,
	route_id TEXT NOT NULL,
	sale_date TEXT NOT NULL,
	shop_name TEXT NOT NULL,
	total_amount REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sale_records_route_date ON sale_records (route_id, sale_date);

CREATE TABLE IF NOT EXISTS sale_lines (
	sale_id TEXT NOT NULL,
	line_no INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	unit TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price REAL NOT NULL,
	line_total REAL NOT NULL,
	PRIMARY KEY (sale_id, line_no)
);

CREATE TABLE IF NOT EXISTS sold_counters (
	route_id TEXT NOT NULL,
	sale_date TEXT NOT NULL,
	product_id TEXT NOT NULL,
	start_pieces INTEGER NOT NULL,
	sold_pieces INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (route_id, sale_date, product_id)
);

CREATE TABLE IF NOT EXISTS shop_names (
	name TEXT PRIMARY KEY,
	last_used_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS summary_archives (
	route_id TEXT NOT NULL,
	sale_date TEXT NOT NULL,
	payload BLOB NOT NULL,
	archived_at TEXT NOT NULL,
	PRIMARY KEY (route_id, sale_date)
);
`

// InitDatabase applies the schema. Only called for the embedded sqlite
// driver; a hosted mysql instance is expected to be provisioned separately.
func InitDatabase(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// LoadProductsCSV imports the externally maintained product catalog from a
// CSV file with columns id, name, box_price, pcs_price, pieces_per_box.
// Missing price/ratio cells stay zero and are defaulted at read time. Returns
// the number of rows imported.
func LoadProductsCSV(db *sqlx.DB, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("LoadProductsCSV: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("LoadProductsCSV: begin: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("LoadProductsCSV: read %s: %w", path, err)
		}
		if len(record) < 3 {
			continue
		}
		if record[0] == "id" { // header row
			continue
		}

		p := model.Product{ID: record[0], Name: record[1]}
		p.BoxPrice, _ = strconv.ParseFloat(record[2], 64)
		if len(record) > 3 && record[3] != "" {
			p.PcsPrice, _ = strconv.ParseFloat(record[3], 64)
		}
		if len(record) > 4 && record[4] != "" {
			p.PiecesPerBox, _ = strconv.Atoi(record[4])
		}
		if err := database.UpsertProductInTx(tx, p); err != nil {
			return 0, fmt.Errorf("LoadProductsCSV: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("LoadProductsCSV: commit: %w", err)
	}
	return count, nil
}
