package render

import (
	"strings"
	"testing"

	"freshsoda/model"
)

func TestReceiptRowExactWidths(t *testing.T) {
	s := model.Summary{
		RouteID: "R1",
		Date:    "2026-08-29",
		Rows: []model.StockPosition{{
			ProductName: "Cola",
			SoldBox:     2, SoldPcs: 3,
			RemainingBox: 1, RemainingPcs: 5,
		}},
	}
	text := ReceiptText(s)
	wantRow := "Cola           |2|3     |1|5    \n"
	if !strings.Contains(text, wantRow) {
		t.Errorf("receipt missing exact row %q:\n%s", wantRow, text)
	}
}

func TestReceiptHeaderAndTotals(t *testing.T) {
	s := model.Summary{
		RouteID: "R7",
		Date:    "2026-08-29",
		Totals: model.SummaryTotals{
			StartBox: 12, StartPcs: 5,
			SoldBox: 7, SoldPcs: 3,
			RemainingBox: 5, RemainingPcs: 2,
		},
		GrandTotalRevenue: 1234,
	}
	text := ReceiptText(s)

	for _, want := range []string{
		"FRESH SODA SALES\n",
		"Date : 2026-08-29\n",
		"Route: R7\n",
		"Start: 12B | 5p\n",
		"Sold : 7B | 3p\n",
		"Left : 5B | 2p\n",
		"TOTAL: ₹1234.00\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("receipt missing %q:\n%s", want, text)
		}
	}
}

func TestReceiptTruncatesLongNames(t *testing.T) {
	s := model.Summary{Rows: []model.StockPosition{{
		ProductName: "Extra Long Lemonade Family Pack",
		SoldBox:     1, SoldPcs: 0, RemainingBox: 0, RemainingPcs: 9,
	}}}
	text := ReceiptText(s)
	if !strings.Contains(text, "Extra Long Lemo|1|0     |0|9    \n") {
		t.Errorf("long name not truncated to 15 columns:\n%s", text)
	}
}
