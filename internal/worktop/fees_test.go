package worktop

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeeGrossAt(t *testing.T) {
	if got := GrossFee(26000).GrossAt(27); !got.Equal(decimal.NewFromInt(26000)) {
		t.Fatalf("gross fee = %s, want 26000", got)
	}

	if got := LegacyNetFee(1000).GrossAt(27); !got.Equal(decimal.NewFromInt(1270)) {
		t.Fatalf("legacy net fee = %s, want 1270", got)
	}

	both := Fee{
		Gross: decimal.NewNullDecimal(decimal.NewFromInt(26000)),
		Net:   decimal.NewNullDecimal(decimal.NewFromInt(20000)),
	}
	if got := both.GrossAt(27); !got.Equal(decimal.NewFromInt(26000)) {
		t.Fatalf("gross must stay authoritative when net is present, got %s", got)
	}

	if got := (Fee{}).GrossAt(27); !got.IsZero() {
		t.Fatalf("empty fee = %s, want 0", got)
	}
}

func TestFeeIsNegative(t *testing.T) {
	if GrossFee(10).IsNegative() {
		t.Fatalf("positive fee reported negative")
	}
	if !GrossFee(-1).IsNegative() || !LegacyNetFee(-0.5).IsNegative() {
		t.Fatalf("negative fee not reported")
	}
}

func TestNewAssemblyDropsUnusedDimensions(t *testing.T) {
	a, err := NewAssembly(TypeCut, Dimensions{A: 1200, B: 600, C: 99, D: 99})
	if err != nil {
		t.Fatalf("NewAssembly: %v", err)
	}
	if a.Dimensions() != (Dimensions{A: 1200, B: 600}) {
		t.Fatalf("dimensions = %+v", a.Dimensions())
	}
	if IsJoined(a) || !IsPriceable(a) {
		t.Fatalf("cut should be priceable and not joined")
	}

	if _, err := ParseAssemblyType("z_join"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	for _, typ := range []AssemblyType{TypeStraightSplice, TypeUJoin} {
		a, err := NewAssembly(typ, Dimensions{A: 1, B: 1, C: 1, D: 1})
		if err != nil {
			t.Fatalf("NewAssembly(%s): %v", typ, err)
		}
		if IsPriceable(a) {
			t.Fatalf("%s should not be priceable", typ)
		}
	}
}
