package worktop

import "github.com/shopspring/decimal"

// Fee is a price stored gross-authoritative, with an optional legacy net
// figure kept for records that predate gross storage.
type Fee struct {
	Gross decimal.NullDecimal `json:"gross"`
	Net   decimal.NullDecimal `json:"net"`
}

// GrossFee returns a fee whose gross value is authoritative.
func GrossFee(gross int64) Fee {
	return Fee{Gross: decimal.NewNullDecimal(decimal.NewFromInt(gross))}
}

// LegacyNetFee returns a fee that only has a net value.
func LegacyNetFee(net float64) Fee {
	return Fee{Net: decimal.NewNullDecimal(decimal.NewFromFloat(net))}
}

// GrossAt returns the gross value of the fee. A stored gross always wins;
// otherwise it is derived from net at the given VAT percentage.
func (f Fee) GrossAt(vatPercent float64) decimal.Decimal {
	if f.Gross.Valid {
		return f.Gross.Decimal
	}
	if f.Net.Valid {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(vatPercent).Div(decimal.NewFromInt(100)))
		return f.Net.Decimal.Mul(factor)
	}
	return decimal.Zero
}

// IsNegative reports whether either stored representation is below zero.
func (f Fee) IsNegative() bool {
	return (f.Gross.Valid && f.Gross.Decimal.IsNegative()) || (f.Net.Valid && f.Net.Decimal.IsNegative())
}

// FeeSchedule holds the per-operation fees. The per-metre fees are charged per
// running metre, all others per operation.
type FeeSchedule struct {
	CrossCut            Fee `json:"cross_cut"`
	RadiusCut           Fee `json:"radius_cut"`
	AngleCut            Fee `json:"angle_cut"`
	Cutout              Fee `json:"cutout"`
	Join                Fee `json:"join"`
	LengthCutPerMeter   Fee `json:"length_cut_per_meter"`
	EdgeBandingPerMeter Fee `json:"edge_banding_per_meter"`
}

// Named returns the fees paired with their schedule keys, in a stable order.
func (s FeeSchedule) Named() []NamedFee {
	return []NamedFee{
		{Key: "cross_cut", Fee: s.CrossCut},
		{Key: "radius_cut", Fee: s.RadiusCut},
		{Key: "angle_cut", Fee: s.AngleCut},
		{Key: "cutout", Fee: s.Cutout},
		{Key: "join", Fee: s.Join},
		{Key: "length_cut_per_meter", Fee: s.LengthCutPerMeter},
		{Key: "edge_banding_per_meter", Fee: s.EdgeBandingPerMeter},
	}
}

// NamedFee is a fee together with its schedule key.
type NamedFee struct {
	Key string
	Fee Fee
}
