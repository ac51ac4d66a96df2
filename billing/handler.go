package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"freshsoda/aggregation"
	"freshsoda/allocation"
	"freshsoda/database"
	"freshsoda/model"
	"freshsoda/shopcache"
	"freshsoda/units"
)

// SaleLineInput is one line of the sale draft as submitted by the billing UI.
type SaleLineInput struct {
	ProductID string  `json:"productId"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// SalePayload is the full sale submission.
type SalePayload struct {
	RouteID  string          `json:"routeId"`
	Date     string          `json:"date"`
	ShopName string          `json:"shopName"`
	Lines    []SaleLineInput `json:"lines"`
}

// SaveSaleHandler persists a completed sale. The per-product stock counters
// are decremented with a guard inside the same transaction as the record
// insert, so a concurrent sale of the last unit is rejected with 409 instead
// of committing an oversell.
func SaveSaleHandler(db *sqlx.DB, shops *shopcache.Cached, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload SalePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.RouteID == "" || payload.ShopName == "" || len(payload.Lines) == 0 {
			http.Error(w, "routeId, shopName and at least one line are required", http.StatusBadRequest)
			return
		}
		date, err := normalizeDate(payload.Date)
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

		rec := model.SaleRecord{
			ID:        uuid.New().String(),
			RouteID:   payload.RouteID,
			Date:      date,
			ShopName:  payload.ShopName,
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		piecesByProduct := make(map[string]int)

		for _, in := range payload.Lines {
			if in.Quantity <= 0 {
				http.Error(w, "line quantity must be positive", http.StatusBadRequest)
				return
			}
			unit, ok := units.Normalize(in.Unit)
			if !ok {
				logger.Warnw("malformed sale line unit, treated as pcs",
					"productId", in.ProductID, "unit", in.Unit)
			}

			product, known := catalog[in.ProductID]
			if !known {
				http.Error(w, "unknown product: "+in.ProductID, http.StatusBadRequest)
				return
			}
			ppb := product.Ratio()
			if ppb <= 0 {
				http.Error(w, "product has an invalid pieces-per-box ratio: "+in.ProductID, http.StatusBadRequest)
				return
			}

			unitPrice := in.UnitPrice
			if unitPrice <= 0 {
				unitPrice = product.PriceFor(unit)
			}
			if unitPrice < 1 {
				http.Error(w, "unit price must be at least 1 for product "+in.ProductID, http.StatusBadRequest)
				return
			}

			line := model.SaleLine{
				ProductID: in.ProductID,
				Unit:      unit,
				Quantity:  in.Quantity,
				UnitPrice: unitPrice,
				LineTotal: float64(in.Quantity) * unitPrice,
			}
			rec.Lines = append(rec.Lines, line)
			rec.TotalAmount += line.LineTotal

			pieces, err := units.ToPieces(in.Quantity, unit, ppb)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			piecesByProduct[in.ProductID] += pieces
		}

		tx, err := db.Beginx()
		if err != nil {
			logger.Errorw("failed to begin sale transaction", "error", err)
			http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		for productID, pieces := range piecesByProduct {
			if err := database.ConsumeStockInTx(tx, rec.RouteID, rec.Date, productID, pieces); err != nil {
				switch {
				case errors.Is(err, database.ErrInsufficientStock):
					http.Error(w, err.Error(), http.StatusConflict)
				case errors.Is(err, database.ErrStockNotLoaded):
					http.Error(w, err.Error(), http.StatusConflict)
				default:
					logger.Errorw("failed to consume stock", "productId", productID, "error", err)
					http.Error(w, "Failed to update stock counters", http.StatusInternalServerError)
				}
				return
			}
		}

		rec.ReceiptNumber, err = database.NextReceiptNumberInTx(tx, rec.Date)
		if err != nil {
			logger.Errorw("failed to generate receipt number", "error", err)
			http.Error(w, "Failed to generate receipt number", http.StatusInternalServerError)
			return
		}
		if err := database.InsertSaleInTx(tx, &rec); err != nil {
			logger.Errorw("failed to insert sale", "receipt", rec.ReceiptNumber, "error", err)
			http.Error(w, "Failed to save sale", http.StatusInternalServerError)
			return
		}
		if err := database.RememberShopNameInTx(tx, rec.ShopName, rec.CreatedAt); err != nil {
			logger.Errorw("failed to remember shop name", "shop", rec.ShopName, "error", err)
			http.Error(w, "Failed to save shop name", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			logger.Errorw("failed to commit sale", "receipt", rec.ReceiptNumber, "error", err)
			http.Error(w, "Failed to commit sale", http.StatusInternalServerError)
			return
		}
		shops.Invalidate()

		logger.Infow("sale saved", "receipt", rec.ReceiptNumber, "route", rec.RouteID,
			"shop", rec.ShopName, "total", rec.TotalAmount)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rec)
	}
}

// QuotePayload asks how much of a unit may be added to the active draft.
type QuotePayload struct {
	RouteID    string `json:"routeId"`
	Date       string `json:"date"`
	ProductID  string `json:"productId"`
	Unit       string `json:"unit"`
	Requested  int    `json:"requested"`
	PendingBox int    `json:"pendingBox"`
	PendingPcs int    `json:"pendingPcs"`
}

// QuoteResponse carries the clamped quantities the UI must display.
type QuoteResponse struct {
	Accepted    int  `json:"accepted"`
	PendingBox  int  `json:"pendingBox"`
	PendingPcs  int  `json:"pendingPcs"`
	MaxAllowed  int  `json:"maxAllowed"`
	StockLoaded bool `json:"stockLoaded"`
}

// QuoteQuantityHandler applies the allocation constraint to a proposed
// quantity change. Remaining stock is reconciled against records saved so
// far, excluding the in-progress draft; the accepted value, not the requested
// one, is what the UI shows.
func QuoteQuantityHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload QuotePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		date, err := normalizeDate(payload.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if payload.ProductID == "" || payload.RouteID == "" {
			http.Error(w, "routeId and productId are required", http.StatusBadRequest)
			return
		}

		rows, stockLoaded, err := aggregation.GetPositions(db, payload.RouteID, date, logger)
		if err != nil {
			logger.Errorw("failed to reconcile positions for quote", "error", err)
			http.Error(w, "Failed to compute remaining stock", http.StatusInternalServerError)
			return
		}

		remainingBox, remainingPcs := 0, 0
		for _, row := range rows {
			if row.ProductID == payload.ProductID {
				remainingBox, remainingPcs = row.RemainingBox, row.RemainingPcs
				break
			}
		}

		catalog, err := database.GetCatalogMap(db)
		if err != nil {
			logger.Errorw("failed to load catalog for quote", "error", err)
			http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
			return
		}
		product, known := catalog[payload.ProductID]
		if !known {
			http.Error(w, "unknown product: "+payload.ProductID, http.StatusBadRequest)
			return
		}
		ppb := product.Ratio()
		if ppb <= 0 {
			http.Error(w, "product has an invalid pieces-per-box ratio: "+payload.ProductID, http.StatusBadRequest)
			return
		}

		draft, err := allocation.NewDraft(remainingBox, remainingPcs, ppb)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		draft.SetPending(payload.PendingBox, payload.PendingPcs)

		unit, _ := units.Normalize(payload.Unit)
		accepted := draft.SetQuantity(unit, payload.Requested)
		pendingBox, pendingPcs := draft.Pending()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(QuoteResponse{
			Accepted:    accepted,
			PendingBox:  pendingBox,
			PendingPcs:  pendingPcs,
			MaxAllowed:  draft.MaxFor(unit),
			StockLoaded: stockLoaded,
		})
	}
}

// RemainingStockHandler returns the live reconciled positions for the billing
// screen, with an explicit flag when no stock load exists.
func RemainingStockHandler(db *sqlx.DB, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID := r.URL.Query().Get("route")
		date, err := normalizeDate(r.URL.Query().Get("date"))
		if routeID == "" || err != nil {
			http.Error(w, "route and date (YYYY-MM-DD) are required", http.StatusBadRequest)
			return
		}

		rows, stockLoaded, err := aggregation.GetPositions(db, routeID, date, logger)
		if err != nil {
			logger.Errorw("failed to reconcile positions", "route", routeID, "date", date, "error", err)
			http.Error(w, "Failed to compute remaining stock", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"stockLoaded": stockLoaded,
			"positions":   rows,
		})
	}
}

func normalizeDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
