package model

// SaleLine is one product line of a sale. LineTotal is fixed at sale time;
// later catalog price changes never alter it.
type SaleLine struct {
	ProductID string  `db:"product_id" json:"productId"`
	Unit      string  `db:"unit" json:"unit"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	LineTotal float64 `db:"line_total" json:"lineTotal"`
}

// SaleRecord is one completed shop transaction. Append-only; corrections are
// out of scope.
type SaleRecord struct {
	ID            string     `db:"id" json:"id"`
	ReceiptNumber string     `db:"receipt_number" json:"receiptNumber"`
	RouteID       string     `db:"route_id" json:"routeId"`
	Date          string     `db:"sale_date" json:"date"`
	ShopName      string     `db:"shop_name" json:"shopName"`
	TotalAmount   float64    `db:"total_amount" json:"totalAmount"`
	CreatedAt     string     `db:"created_at" json:"createdAt"`
	Lines         []SaleLine `json:"lines"`
}
