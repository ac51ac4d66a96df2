package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/config"
	"freshsoda/database"
	"freshsoda/shopcache"
)

// ListProductsHandler returns the read-only product catalog. Catalog
// maintenance belongs to the external owner; this service only reads it.
func ListProductsHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := database.ListProducts(db)
		if err != nil {
			logger.Errorw("failed to list products", "error", err)
			http.Error(w, "Failed to list products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}

// GetProductHandler returns a single catalog row by id.
func GetProductHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		if id == "" {
			http.Error(w, "product id is required", http.StatusBadRequest)
			return
		}
		product, err := database.GetProductByID(db, id)
		if err != nil {
			logger.Errorw("failed to get product", "id", id, "error", err)
			http.Error(w, "Failed to get product", http.StatusInternalServerError)
			return
		}
		if product == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}
}

// ListShopNamesHandler returns known shop names for billing suggestions,
// served through the injected cache.
func ListShopNamesHandler(shops *shopcache.Cached, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := shops.Known(config.GetConfig().ShopNameLimit)
		if err != nil {
			logger.Errorw("failed to list shop names", "error", err)
			http.Error(w, "Failed to list shop names", http.StatusInternalServerError)
			return
		}
		if names == nil {
			names = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(names)
	}
}
