package report

import (
	"math"
	"testing"

	"freshsoda/model"
)

func TestBuildTotalsPerUnit(t *testing.T) {
	rows := []model.StockPosition{
		{ProductID: "P1", StartBox: 5, StartPcs: 2, SoldBox: 2, SoldPcs: 3, RemainingBox: 2, RemainingPcs: 23, Revenue: 516},
		{ProductID: "P2", StartBox: 7, StartPcs: 3, SoldBox: 5, SoldPcs: 0, RemainingBox: 2, RemainingPcs: 3, Revenue: 1500},
	}
	records := []model.SaleRecord{{TotalAmount: 1000}, {TotalAmount: 1016}}

	s := Build("R1", "2026-08-29", true, rows, records, nil)

	want := model.SummaryTotals{StartBox: 12, StartPcs: 5, SoldBox: 7, SoldPcs: 3, RemainingBox: 4, RemainingPcs: 26}
	if s.Totals != want {
		t.Errorf("totals = %+v, want %+v", s.Totals, want)
	}
	if math.Abs(s.GrandTotalRevenue-2016) > 1e-9 {
		t.Errorf("grand total = %v, want 2016", s.GrandTotalRevenue)
	}
	if math.Abs(s.RecordedTotal-2016) > 1e-9 {
		t.Errorf("recorded total = %v, want 2016", s.RecordedTotal)
	}
	if s.SaleCount != 2 || !s.StockLoaded {
		t.Errorf("saleCount = %d stockLoaded = %v", s.SaleCount, s.StockLoaded)
	}
}

func TestBuildEmptyDay(t *testing.T) {
	s := Build("R9", "2026-08-29", false, nil, nil, nil)
	if s.Totals != (model.SummaryTotals{}) || s.GrandTotalRevenue != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.StockLoaded {
		t.Error("stockLoaded should stay false")
	}
}
