package summary

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"freshsoda/aggregation"
	"freshsoda/database"
	"freshsoda/model"
	"freshsoda/render"
	"freshsoda/report"
)

func buildSummary(db *sqlx.DB, routeID, date string, logger *zap.SugaredLogger) (model.Summary, error) {
	rows, records, stockLoaded, err := aggregation.LoadDay(db, routeID, date, logger)
	if err != nil {
		return model.Summary{}, err
	}
	return report.Build(routeID, date, stockLoaded, rows, records, logger), nil
}

func routeAndDate(r *http.Request) (string, string, bool) {
	routeID := r.URL.Query().Get("route")
	date := r.URL.Query().Get("date")
	if routeID == "" {
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", false
	}
	return routeID, date, true
}

// GetSummaryHandler returns the route/day summary payload.
func GetSummaryHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID, date, ok := routeAndDate(r)
		if !ok {
			http.Error(w, "route and date (YYYY-MM-DD) are required", http.StatusBadRequest)
			return
		}
		s, err := buildSummary(db, routeID, date, logger)
		if err != nil {
			logger.Errorw("failed to build summary", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to build summary", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

// GetReceiptHandler returns the summary as the 32-column plain-text receipt.
func GetReceiptHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID, date, ok := routeAndDate(r)
		if !ok {
			http.Error(w, "route and date (YYYY-MM-DD) are required", http.StatusBadRequest)
			return
		}
		s, err := buildSummary(db, routeID, date, logger)
		if err != nil {
			logger.Errorw("failed to build receipt", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to build receipt", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(render.ReceiptText(s)))
	}
}

// ArchiveSummaryHandler snapshots the current summary as a msgpack blob so
// the day can be reviewed later without rescanning its sales.
func ArchiveSummaryHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		routeID, date, ok := routeAndDate(r)
		if !ok {
			http.Error(w, "route and date (YYYY-MM-DD) are required", http.StatusBadRequest)
			return
		}
		s, err := buildSummary(db, routeID, date, logger)
		if err != nil {
			logger.Errorw("failed to build summary for archive", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to build summary", http.StatusInternalServerError)
			return
		}

		payload, err := msgpack.Marshal(s)
		if err != nil {
			logger.Errorw("failed to encode summary archive", "error", err)
			http.Error(w, "Failed to encode archive", http.StatusInternalServerError)
			return
		}
		if err := database.SaveSummaryArchive(db, routeID, date, payload, time.Now().Format(time.RFC3339)); err != nil {
			logger.Errorw("failed to save summary archive", "error", err)
			http.Error(w, "Failed to save archive", http.StatusInternalServerError)
			return
		}

		logger.Infow("summary archived", "route", routeID, "date", date, "bytes", len(payload))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"message": "summary archived", "bytes": len(payload)})
	}
}

// GetArchivedSummaryHandler returns a previously archived snapshot.
func GetArchivedSummaryHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID, date, ok := routeAndDate(r)
		if !ok {
			http.Error(w, "route and date (YYYY-MM-DD) are required", http.StatusBadRequest)
			return
		}
		payload, err := database.GetSummaryArchive(db, routeID, date)
		if err != nil {
			logger.Errorw("failed to get summary archive", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to get archive", http.StatusInternalServerError)
			return
		}
		if payload == nil {
			http.NotFound(w, r)
			return
		}

		var s model.Summary
		if err := msgpack.Unmarshal(payload, &s); err != nil {
			logger.Errorw("failed to decode summary archive", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to decode archive", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}
