package model

// StockLoadEntry is one (product, unit) line of a stock load. At most one
// entry exists per (productId, unit).
type StockLoadEntry struct {
	ProductID string `db:"product_id" json:"productId"`
	Unit      string `db:"unit" json:"unit"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// StockLoad is the declared starting inventory for a (route, date). Created
// once when the route begins and never mutated afterward.
type StockLoad struct {
	ID        int64            `db:"id" json:"id"`
	RouteID   string           `db:"route_id" json:"routeId"`
	Date      string           `db:"load_date" json:"date"`
	CreatedAt string           `db:"created_at" json:"createdAt"`
	Entries   []StockLoadEntry `json:"entries"`
}

// StockPosition is the derived per-product reconciliation row. It is never
// persisted; it is recomputed from the stock load and the sale records.
type StockPosition struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	StartBox      int     `json:"startBox"`
	StartPcs      int     `json:"startPcs"`
	SoldBox       int     `json:"soldBox"`
	SoldPcs       int     `json:"soldPcs"`
	RemainingBox  int     `json:"remainingBox"`
	RemainingPcs  int     `json:"remainingPcs"`
	Revenue       float64 `json:"revenue"`
	DeficitPieces int     `json:"deficitPieces,omitempty"`
}
