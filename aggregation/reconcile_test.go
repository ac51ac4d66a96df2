package aggregation

import (
	"errors"
	"testing"

	"freshsoda/model"
)

func load(routeID, date string, entries ...model.StockLoadEntry) *model.StockLoad {
	return &model.StockLoad{RouteID: routeID, Date: date, Entries: entries}
}

func TestStartPositionsNoStockLoaded(t *testing.T) {
	starts, err := StartPositions(nil)
	if !errors.Is(err, ErrNoStockLoaded) {
		t.Fatalf("err = %v, want ErrNoStockLoaded", err)
	}
	if len(starts) != 0 {
		t.Errorf("starts = %v, want empty", starts)
	}
}

func TestStartPositionsDefaultsToZero(t *testing.T) {
	starts, err := StartPositions(load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "P1", Unit: "box", Quantity: 5},
		model.StockLoadEntry{ProductID: "P1", Unit: "pcs", Quantity: 10},
	))
	if err != nil {
		t.Fatal(err)
	}
	if got := starts["P1"]; got.Box != 5 || got.Pcs != 10 {
		t.Errorf("P1 start = %+v, want {5 10}", got)
	}
	if got := starts["P9"]; got != (StartPosition{}) {
		t.Errorf("absent product start = %+v, want zero", got)
	}
}

func TestBuildPositionsRemaining(t *testing.T) {
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "P1", Unit: "box", Quantity: 3},
		model.StockLoadEntry{ProductID: "P1", Unit: "pcs", Quantity: 10},
	)
	records := []model.SaleRecord{{Lines: []model.SaleLine{
		{ProductID: "P1", Unit: "box", Quantity: 1, LineTotal: 240},
		{ProductID: "P1", Unit: "pcs", Quantity: 20, LineTotal: 240},
	}}}

	rows, err := BuildPositions(l, records, testCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	// start 3*24+10 = 82, sold 24+20 = 44, remaining 38 = 1 box + 14 pcs.
	r := rows[0]
	if r.RemainingBox != 1 || r.RemainingPcs != 14 {
		t.Errorf("remaining = %dB %dp, want 1B 14p", r.RemainingBox, r.RemainingPcs)
	}
	if r.DeficitPieces != 0 {
		t.Errorf("deficit = %d, want 0", r.DeficitPieces)
	}
}

// Two 3-box sales against a 5-box load: an oversell that bypassed the
// allocation guard is reported as zero remaining, with the 24-piece shortfall
// kept in the audit field rather than shown as a negative quantity.
func TestBuildPositionsClampsMaskedOversell(t *testing.T) {
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "P1", Unit: "box", Quantity: 5},
	)
	records := []model.SaleRecord{
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "box", Quantity: 3, LineTotal: 720}}},
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "box", Quantity: 3, LineTotal: 720}}},
	}

	rows, err := BuildPositions(l, records, testCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := rows[0]
	if r.RemainingBox != 0 || r.RemainingPcs != 0 {
		t.Errorf("remaining = %dB %dp, want clamped 0B 0p", r.RemainingBox, r.RemainingPcs)
	}
	if r.DeficitPieces != 24 {
		t.Errorf("deficit = %d pieces, want 24", r.DeficitPieces)
	}
}

func TestBuildPositionsNeverNegative(t *testing.T) {
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "P1", Unit: "pcs", Quantity: 7},
		model.StockLoadEntry{ProductID: "P2", Unit: "box", Quantity: 1},
	)
	records := []model.SaleRecord{
		{Lines: []model.SaleLine{
			{ProductID: "P1", Unit: "box", Quantity: 4, LineTotal: 1},
			{ProductID: "P2", Unit: "pcs", Quantity: 100, LineTotal: 1},
		}},
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "pcs", Quantity: 9, LineTotal: 1}}},
	}
	rows, err := BuildPositions(l, records, testCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.RemainingBox < 0 || r.RemainingPcs < 0 {
			t.Errorf("%s remaining = %dB %dp: negative", r.ProductID, r.RemainingBox, r.RemainingPcs)
		}
	}
}

func TestBuildPositionsFiltersIdleProducts(t *testing.T) {
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "P1", Unit: "box", Quantity: 0},
		model.StockLoadEntry{ProductID: "P2", Unit: "box", Quantity: 2},
	)
	rows, err := BuildPositions(l, nil, testCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ProductID != "P2" {
		t.Errorf("rows = %+v, want only P2", rows)
	}
}

func TestBuildPositionsExcludesInvalidRatio(t *testing.T) {
	catalog := map[string]model.Product{
		"BAD": {ID: "BAD", Name: "Broken", PiecesPerBox: -1},
		"P1":  {ID: "P1", Name: "Cola", BoxPrice: 240, PcsPrice: 12, PiecesPerBox: 24},
	}
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "BAD", Unit: "box", Quantity: 1},
		model.StockLoadEntry{ProductID: "P1", Unit: "box", Quantity: 1},
	)
	rows, err := BuildPositions(l, nil, catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The broken product degrades its own row only; the report still builds.
	if len(rows) != 1 || rows[0].ProductID != "P1" {
		t.Fatalf("rows = %+v, want only P1", rows)
	}
}

func TestBuildPositionsOrderedByNameCaseInsensitive(t *testing.T) {
	catalog := map[string]model.Product{
		"A": {ID: "A", Name: "apple soda", PiecesPerBox: 24},
		"B": {ID: "B", Name: "Berry", PiecesPerBox: 24},
		"C": {ID: "C", Name: "Apple Soda", PiecesPerBox: 24},
		"D": {ID: "D", Name: "cola", PiecesPerBox: 24},
	}
	l := load("R1", "2026-08-29",
		model.StockLoadEntry{ProductID: "D", Unit: "box", Quantity: 1},
		model.StockLoadEntry{ProductID: "B", Unit: "box", Quantity: 1},
		model.StockLoadEntry{ProductID: "A", Unit: "box", Quantity: 1},
		model.StockLoadEntry{ProductID: "C", Unit: "box", Quantity: 1},
	)
	rows, err := BuildPositions(l, nil, catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range rows {
		got = append(got, r.ProductID)
	}
	// "apple soda"/"Apple Soda" compare equal ignoring case; the ID tiebreak
	// keeps the order stable.
	want := []string{"A", "C", "B", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildPositionsNoStockLoadedStillReturnsRows(t *testing.T) {
	records := []model.SaleRecord{{Lines: []model.SaleLine{
		{ProductID: "P1", Unit: "pcs", Quantity: 2, LineTotal: 24},
	}}}
	rows, err := BuildPositions(nil, records, testCatalog(), nil)
	if !errors.Is(err, ErrNoStockLoaded) {
		t.Fatalf("err = %v, want ErrNoStockLoaded", err)
	}
	if len(rows) != 1 || rows[0].StartBox != 0 || rows[0].StartPcs != 0 {
		t.Errorf("rows = %+v, want one all-zero-start row", rows)
	}
	if rows[0].DeficitPieces != 2 {
		t.Errorf("deficit = %d, want 2", rows[0].DeficitPieces)
	}
}
