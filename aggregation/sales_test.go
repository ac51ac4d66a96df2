package aggregation

import (
	"math"
	"testing"

	"freshsoda/model"
	"freshsoda/units"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testCatalog() map[string]model.Product {
	return map[string]model.Product{
		"P1": {ID: "P1", Name: "Cola", BoxPrice: 240, PcsPrice: 12, PiecesPerBox: 24},
		"P2": {ID: "P2", Name: "Orange", BoxPrice: 300, PiecesPerBox: 12},
	}
}

func TestFoldSalesSumsAcrossRecords(t *testing.T) {
	records := []model.SaleRecord{
		{Lines: []model.SaleLine{
			{ProductID: "P1", Unit: "box", Quantity: 2, UnitPrice: 240, LineTotal: 480},
			{ProductID: "P1", Unit: "pcs", Quantity: 5, UnitPrice: 12, LineTotal: 60},
		}},
		{Lines: []model.SaleLine{
			{ProductID: "P1", Unit: "box", Quantity: 1, UnitPrice: 240, LineTotal: 240},
			{ProductID: "P2", Unit: "pcs", Quantity: 3, UnitPrice: 25, LineTotal: 75},
		}},
	}

	sold := FoldSales(records, testCatalog(), nil)

	p1 := sold["P1"]
	if p1.Box != 3 || p1.Pcs != 5 {
		t.Errorf("P1 totals = %dB %dp, want 3B 5p", p1.Box, p1.Pcs)
	}
	if !almostEqual(p1.Revenue, 780) {
		t.Errorf("P1 revenue = %v, want 780", p1.Revenue)
	}
	p2 := sold["P2"]
	if p2.Box != 0 || p2.Pcs != 3 || !almostEqual(p2.Revenue, 75) {
		t.Errorf("P2 totals = %+v", p2)
	}
}

func TestFoldSalesOrderIndependent(t *testing.T) {
	records := []model.SaleRecord{
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "box", Quantity: 2, LineTotal: 480}}},
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "pcs", Quantity: 7, LineTotal: 84}}},
		{Lines: []model.SaleLine{{ProductID: "P1", Unit: "box", Quantity: 1, LineTotal: 240}}},
	}
	reversed := []model.SaleRecord{records[2], records[1], records[0]}

	a := FoldSales(records, testCatalog(), nil)
	b := FoldSales(reversed, testCatalog(), nil)
	if a["P1"] != b["P1"] {
		t.Errorf("fold depends on record order: %+v vs %+v", a["P1"], b["P1"])
	}
}

func TestFoldSalesConservesPieces(t *testing.T) {
	lines := []model.SaleLine{
		{ProductID: "P1", Unit: "box", Quantity: 2, LineTotal: 480},
		{ProductID: "P1", Unit: "pcs", Quantity: 7, LineTotal: 84},
		{ProductID: "P1", Unit: "box", Quantity: 1, LineTotal: 240},
		{ProductID: "P1", Unit: "pcs", Quantity: 4, LineTotal: 48},
	}
	ppb := 24

	wantPieces := 0
	for _, l := range lines {
		p, err := units.ToPieces(l.Quantity, l.Unit, ppb)
		if err != nil {
			t.Fatal(err)
		}
		wantPieces += p
	}

	groupings := [][]model.SaleRecord{
		{{Lines: lines}},
		{{Lines: lines[:2]}, {Lines: lines[2:]}},
		{{Lines: lines[:1]}, {Lines: lines[1:3]}, {Lines: lines[3:]}},
	}
	for i, records := range groupings {
		sold := FoldSales(records, testCatalog(), nil)
		got := sold["P1"].Box*ppb + sold["P1"].Pcs
		if got != wantPieces {
			t.Errorf("grouping %d: sold pieces = %d, want %d", i, got, wantPieces)
		}
	}
}

func TestFoldSalesRevenueFallbackTiers(t *testing.T) {
	catalog := testCatalog()
	records := []model.SaleRecord{{Lines: []model.SaleLine{
		// Tier 1: line total wins even when it disagrees with qty*price.
		{ProductID: "P1", Unit: "pcs", Quantity: 2, UnitPrice: 12, LineTotal: 20},
		// Tier 2: no line total, recompute from unit price.
		{ProductID: "P1", Unit: "pcs", Quantity: 3, UnitPrice: 11},
		// Tier 3: neither, fall back to the catalog pcs price (12).
		{ProductID: "P1", Unit: "pcs", Quantity: 4},
	}}}

	sold := FoldSales(records, catalog, nil)
	want := 20.0 + 33.0 + 48.0
	if !almostEqual(sold["P1"].Revenue, want) {
		t.Errorf("revenue = %v, want %v", sold["P1"].Revenue, want)
	}
}

func TestFoldSalesCatalogFallbackDerivesPcsPrice(t *testing.T) {
	// P2 has no pcs price; tier 3 derives boxPrice/ratio = 300/12 = 25.
	records := []model.SaleRecord{{Lines: []model.SaleLine{
		{ProductID: "P2", Unit: "pcs", Quantity: 2},
	}}}
	sold := FoldSales(records, testCatalog(), nil)
	if !almostEqual(sold["P2"].Revenue, 50) {
		t.Errorf("revenue = %v, want 50", sold["P2"].Revenue)
	}
}

func TestFoldSalesMalformedUnitCountsAsPcs(t *testing.T) {
	records := []model.SaleRecord{{Lines: []model.SaleLine{
		{ProductID: "P1", Unit: "crate", Quantity: 6, LineTotal: 72},
	}}}
	sold := FoldSales(records, testCatalog(), nil)
	if sold["P1"].Pcs != 6 || sold["P1"].Box != 0 {
		t.Errorf("malformed unit line = %+v, want counted as 6 pcs", sold["P1"])
	}
}
