package stockload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/database"
	"freshsoda/model"
)

// LoadPayload is the stock load submitted when a route begins.
type LoadPayload struct {
	RouteID string                 `json:"routeId"`
	Date    string                 `json:"date"`
	Entries []model.StockLoadEntry `json:"entries"`
}

// SaveStockLoadHandler creates the one load allowed per (route, date) and
// seeds the sold counters that every later sale is checked against.
func SaveStockLoadHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload LoadPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.RouteID == "" || len(payload.Entries) == 0 {
			http.Error(w, "routeId and at least one entry are required", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		catalog, err := database.GetCatalogMap(db)
		if err != nil {
			logger.Errorw("failed to load catalog", "error", err)
			http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
			return
		}
		for _, e := range payload.Entries {
			if _, known := catalog[e.ProductID]; !known {
				http.Error(w, "unknown product: "+e.ProductID, http.StatusBadRequest)
				return
			}
			if e.Quantity < 0 {
				http.Error(w, "entry quantity must not be negative", http.StatusBadRequest)
				return
			}
		}

		load := model.StockLoad{
			RouteID:   payload.RouteID,
			Date:      date.Format("2006-01-02"),
			CreatedAt: time.Now().Format(time.RFC3339),
			Entries:   payload.Entries,
		}

		tx, err := db.Beginx()
		if err != nil {
			logger.Errorw("failed to begin stock load transaction", "error", err)
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.InsertStockLoadInTx(tx, &load, catalog); err != nil {
			if errors.Is(err, database.ErrStockLoadExists) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			logger.Errorw("failed to insert stock load", "route", load.RouteID, "date", load.Date, "error", err)
			http.Error(w, "Failed to save stock load", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			logger.Errorw("failed to commit stock load", "error", err)
			http.Error(w, "Failed to commit stock load", http.StatusInternalServerError)
			return
		}

		logger.Infow("stock load saved", "route", load.RouteID, "date", load.Date, "entries", len(load.Entries))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(load)
	}
}

// GetStockLoadHandler fetches the load for a (route, date). A missing load is
// reported explicitly, never conflated with an empty one.
func GetStockLoadHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID := r.URL.Query().Get("route")
		date := r.URL.Query().Get("date")
		if routeID == "" || date == "" {
			http.Error(w, "route and date are required", http.StatusBadRequest)
			return
		}

		load, err := database.GetStockLoad(db, routeID, date)
		if err != nil {
			logger.Errorw("failed to get stock load", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to get stock load", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if load == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"noStockLoaded": true})
			return
		}
		json.NewEncoder(w).Encode(load)
	}
}
