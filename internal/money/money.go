// Package money holds the whole-unit rounding rules used for every quoted amount.
//
// All figures leave this package as int64 whole currency units. Fractions only
// exist while a raw amount is being computed.
package money

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Amount is a net/VAT/gross triple in whole currency units.
type Amount struct {
	Net   int64 `json:"net"`
	VAT   int64 `json:"vat"`
	Gross int64 `json:"gross"`
}

// Add returns the field-wise sum of a and b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Net: a.Net + b.Net, VAT: a.VAT + b.VAT, Gross: a.Gross + b.Gross}
}

// IsZero reports whether all three figures are zero.
func (a Amount) IsZero() bool {
	return a.Net == 0 && a.VAT == 0 && a.Gross == 0
}

// Rate converts a VAT percentage (27 for 27%) into a multiplier (0.27).
func Rate(vatPercent float64) decimal.Decimal {
	return decimal.NewFromFloat(vatPercent).Div(hundred)
}

// RoundUnit rounds x to the nearest whole unit, halves away from zero.
func RoundUnit(x decimal.Decimal) int64 {
	return x.Round(0).IntPart()
}

// VATFromNet returns the VAT due on a whole-unit net amount.
func VATFromNet(net int64, vatPercent float64) int64 {
	return RoundUnit(decimal.NewFromInt(net).Mul(Rate(vatPercent)))
}

// GrossFromNet returns net + vat. Both inputs are already whole units.
func GrossFromNet(net, vat int64) int64 {
	return RoundUnit(decimal.NewFromInt(net).Add(decimal.NewFromInt(vat)))
}

// NetFromGrossFee derives the net part of a gross-authoritative fee.
func NetFromGrossFee(grossFee decimal.Decimal, vatPercent float64) int64 {
	return RoundUnit(grossFee.Div(one.Add(Rate(vatPercent))))
}

// NetPerUnit returns the unrounded net price of a gross per-unit fee, used when
// the fee is multiplied by a measured quantity before rounding.
func NetPerUnit(grossFee decimal.Decimal, vatPercent float64) decimal.Decimal {
	return grossFee.Div(one.Add(Rate(vatPercent)))
}

// FixedFee prices quantity units of a gross-authoritative fee.
//
// The gross column is the stored fee times quantity and is never recomputed
// through net, so a 26 000 fee stays 26 000. VAT is whatever remains after the
// derived net.
func FixedFee(grossFee decimal.Decimal, quantity int, vatPercent float64) Amount {
	if quantity <= 0 {
		return Amount{}
	}
	gross := RoundUnit(grossFee.Mul(decimal.NewFromInt(int64(quantity))))
	net := NetFromGrossFee(decimal.NewFromInt(gross), vatPercent)
	return Amount{Net: net, VAT: gross - net, Gross: gross}
}

// Proportional prices a raw net amount that has no fixed gross reference.
func Proportional(rawNet decimal.Decimal, vatPercent float64) Amount {
	net := RoundUnit(rawNet)
	vat := VATFromNet(net, vatPercent)
	return Amount{Net: net, VAT: vat, Gross: GrossFromNet(net, vat)}
}
