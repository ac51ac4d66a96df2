// Package render builds display output shared across features. The receipt
// targets 32-column thermal printers, so every line is fixed width.
package render

import (
	"fmt"
	"strings"

	"freshsoda/model"
)

const receiptWidth = 32

// ReceiptText renders the route/day summary as a 32-column plain-text
// receipt. Product names are truncated to 15 characters; the sold and left
// columns carry "<box>|<pcs>" padded to 8 and 7 characters.
func ReceiptText(s model.Summary) string {
	var sb strings.Builder
	divider := strings.Repeat("-", receiptWidth) + "\n"

	sb.WriteString("FRESH SODA SALES\n")
	sb.WriteString(fmt.Sprintf("Date : %s\n", s.Date))
	sb.WriteString(fmt.Sprintf("Route: %s\n", s.RouteID))
	sb.WriteString(fmt.Sprintf("Start: %dB | %dp\n", s.Totals.StartBox, s.Totals.StartPcs))
	sb.WriteString(fmt.Sprintf("Sold : %dB | %dp\n", s.Totals.SoldBox, s.Totals.SoldPcs))
	sb.WriteString(fmt.Sprintf("Left : %dB | %dp\n", s.Totals.RemainingBox, s.Totals.RemainingPcs))
	sb.WriteString(divider)

	sb.WriteString(row("Item", "Sold", "Left"))
	for _, r := range s.Rows {
		sb.WriteString(row(r.ProductName,
			fmt.Sprintf("%d|%d", r.SoldBox, r.SoldPcs),
			fmt.Sprintf("%d|%d", r.RemainingBox, r.RemainingPcs)))
	}
	sb.WriteString(divider)

	sb.WriteString(fmt.Sprintf("TOTAL: ₹%.2f\n", s.GrandTotalRevenue))
	return sb.String()
}

func row(name, sold, left string) string {
	return fmt.Sprintf("%-15.15s|%-8.8s|%-7.7s\n", name, sold, left)
}
