package model

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want int
	}{
		{"stored ratio wins", Product{PiecesPerBox: 12, BoxPrice: 240, PcsPrice: 12}, 12},
		{"inferred from prices", Product{BoxPrice: 240, PcsPrice: 12}, 20},
		{"inferred rounds", Product{BoxPrice: 250, PcsPrice: 12}, 21},
		{"default when unspecified", Product{}, 24},
		{"default when only box price", Product{BoxPrice: 240}, 24},
		{"invalid stays invalid", Product{PiecesPerBox: -1}, -1},
	}
	for _, c := range cases {
		if got := c.p.Ratio(); got != c.want {
			t.Errorf("%s: Ratio() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestPriceFor(t *testing.T) {
	p := Product{BoxPrice: 240, PcsPrice: 12, PiecesPerBox: 24}
	if got := p.PriceFor("box"); got != 240 {
		t.Errorf("box price = %v, want 240", got)
	}
	if got := p.PriceFor("pcs"); got != 12 {
		t.Errorf("pcs price = %v, want 12", got)
	}

	// Derived pcs price when the catalog row has none: 300/12 = 25.
	derived := Product{BoxPrice: 300, PiecesPerBox: 12}
	if got := derived.PriceFor("pcs"); math.Abs(got-25) > 1e-9 {
		t.Errorf("derived pcs price = %v, want 25", got)
	}
}
