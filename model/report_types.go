package model

// SummaryTotals are the route/day column sums. Box and pcs are summed
// independently per unit; they are tallies, not pieces-normalized quantities,
// since each product has its own pieces-per-box.
type SummaryTotals struct {
	StartBox     int `json:"startBox"`
	StartPcs     int `json:"startPcs"`
	SoldBox      int `json:"soldBox"`
	SoldPcs      int `json:"soldPcs"`
	RemainingBox int `json:"remainingBox"`
	RemainingPcs int `json:"remainingPcs"`
}

// Summary is the route/day report payload.
type Summary struct {
	RouteID           string          `json:"routeId"`
	Date              string          `json:"date"`
	StockLoaded       bool            `json:"stockLoaded"`
	Rows              []StockPosition `json:"rows"`
	Totals            SummaryTotals   `json:"totals"`
	GrandTotalRevenue float64         `json:"grandTotalRevenue"`
	RecordedTotal     float64         `json:"recordedTotal"`
	SaleCount         int             `json:"saleCount"`
}
