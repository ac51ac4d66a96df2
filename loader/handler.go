package loader

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/config"
)

// ReloadCatalogHandler re-imports the product catalog CSV on demand.
func ReloadCatalogHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		path := config.GetConfig().CatalogCSVPath
		if path == "" {
			http.Error(w, "no catalog CSV path configured", http.StatusBadRequest)
			return
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.Error(w, fmt.Sprintf("catalog CSV not found: %s", path), http.StatusNotFound)
			return
		}

		count, err := LoadProductsCSV(db, path)
		if err != nil {
			logger.Errorw("catalog reload failed", "path", path, "error", err)
			http.Error(w, "failed to reload catalog", http.StatusInternalServerError)
			return
		}
		logger.Infow("catalog reloaded", "path", path, "products", count)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"message": "catalog reloaded", "products": count})
	}
}
