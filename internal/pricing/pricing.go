package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/worktop/internal/money"
	"github.com/Simplici0/worktop/internal/worktop"
)

// ErrPrecondition is returned when an input breaks the calculator's contract,
// for example a negative dimension or fee.
var ErrPrecondition = errors.New("pricing precondition violated")

var thousand = decimal.NewFromInt(1000)

// Category names one of the eight fee categories.
type Category string

const (
	CategoryMaterial    Category = "material"
	CategoryCrossCut    Category = "cross_cut"
	CategoryLengthCut   Category = "length_cut"
	CategoryRadiusCut   Category = "radius_cut"
	CategoryAngleCut    Category = "angle_cut"
	CategoryCutout      Category = "cutout"
	CategoryEdgeBanding Category = "edge_banding"
	CategoryJoin        Category = "join"
)

// Details describes what a category was charged for.
type Details struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Note     string  `json:"note,omitempty"`
}

// Line is the priced result of one category.
type Line struct {
	money.Amount
	Details Details `json:"details"`
}

// Breakdown contains the eight category lines of one configuration.
type Breakdown struct {
	Material    Line `json:"material"`
	CrossCut    Line `json:"cross_cut"`
	LengthCut   Line `json:"length_cut"`
	RadiusCut   Line `json:"radius_cut"`
	AngleCut    Line `json:"angle_cut"`
	Cutout      Line `json:"cutout"`
	EdgeBanding Line `json:"edge_banding"`
	Join        Line `json:"join"`
}

// NamedLine pairs a breakdown line with its category.
type NamedLine struct {
	Category Category
	Line     Line
}

// Lines returns the breakdown in category order.
func (b Breakdown) Lines() []NamedLine {
	return []NamedLine{
		{CategoryMaterial, b.Material},
		{CategoryCrossCut, b.CrossCut},
		{CategoryLengthCut, b.LengthCut},
		{CategoryRadiusCut, b.RadiusCut},
		{CategoryAngleCut, b.AngleCut},
		{CategoryCutout, b.Cutout},
		{CategoryEdgeBanding, b.EdgeBanding},
		{CategoryJoin, b.Join},
	}
}

// Totals contains roll-up values of one configuration.
type Totals struct {
	Net   int64 `json:"net"`
	VAT   int64 `json:"vat"`
	Gross int64 `json:"gross"`
}

// QuoteLineItem is the priced result of one configuration.
type QuoteLineItem struct {
	Index        int                  `json:"index"`
	Label        string               `json:"label,omitempty"`
	Assembly     worktop.AssemblyType `json:"assembly"`
	MaterialID   int64                `json:"material_id"`
	MaterialName string               `json:"material_name"`
	Currency     string               `json:"currency"`
	Breakdown    Breakdown            `json:"breakdown"`
	Totals       Totals               `json:"totals"`
}

// Calculate prices one configuration against its material.
//
// The caller is expected to have validated cfg. Only Cut, LeftJoin and
// RightJoin have a pricing model; other assemblies return ErrPrecondition.
func Calculate(cfg worktop.Configuration, m worktop.Material, fees worktop.FeeSchedule) (QuoteLineItem, error) {
	if err := checkMaterial(m); err != nil {
		return QuoteLineItem{}, err
	}
	s, err := newShape(cfg.Assembly)
	if err != nil {
		return QuoteLineItem{}, err
	}
	if err := checkConfiguration(cfg); err != nil {
		return QuoteLineItem{}, err
	}

	vat := m.VATPercent
	b := Breakdown{
		Material:    materialLine(s, m),
		CrossCut:    fixedLine(fees.CrossCut, s.crossCuts(), vat),
		LengthCut:   lengthCutLine(s, m, fees.LengthCutPerMeter),
		RadiusCut:   fixedLine(fees.RadiusCut, radiusCount(cfg), vat),
		AngleCut:    fixedLine(fees.AngleCut, angleCount(cfg), vat),
		Cutout:      fixedLine(fees.Cutout, len(cfg.Cutouts), vat),
		EdgeBanding: edgeBandingLine(s, cfg.EdgeBanding, fees.EdgeBandingPerMeter, vat),
		Join:        fixedLine(fees.Join, s.joins(), vat),
	}

	var sum money.Amount
	for _, l := range b.Lines() {
		sum = sum.Add(l.Line.Amount)
	}

	return QuoteLineItem{
		Label:        cfg.Label,
		Assembly:     cfg.Assembly.Type(),
		MaterialID:   m.ID,
		MaterialName: m.Name,
		Currency:     m.Currency,
		Breakdown:    b,
		Totals: Totals{
			Net:   sum.Net,
			VAT:   sum.VAT,
			Gross: money.GrossFromNet(sum.Net, sum.VAT),
		},
	}, nil
}

// materialLine charges consumed length on stock items and whole boards otherwise.
func materialLine(s shape, m worktop.Material) Line {
	price := decimal.NewFromFloat(m.PricePerMeter)

	if m.OnStock {
		meters := decimal.NewFromFloat(s.consumedLength()).Div(thousand)
		return Line{
			Amount:  money.Proportional(meters.Mul(price), m.VATPercent),
			Details: Details{Quantity: meters.InexactFloat64(), Unit: "m"},
		}
	}

	boards := math.Ceil(s.boardLength() / m.Length)
	boardMeters := decimal.NewFromFloat(m.Length).Div(thousand)
	raw := decimal.NewFromFloat(boards).Mul(price).Mul(boardMeters)
	return Line{
		Amount: money.Proportional(raw, m.VATPercent),
		Details: Details{
			Quantity: boards,
			Unit:     "board",
			Note:     fmt.Sprintf("%s mm boards", decimal.NewFromFloat(m.Length).String()),
		},
	}
}

func lengthCutLine(s shape, m worktop.Material, fee worktop.Fee) Line {
	var mm float64
	for _, run := range s.lengthCuts(m.Width) {
		mm += run
	}
	meters := decimal.NewFromFloat(mm).Div(thousand)
	return perMeterLine(fee, meters, m.VATPercent)
}

func edgeBandingLine(s shape, eb worktop.EdgeBanding, fee worktop.Fee, vatPercent float64) Line {
	if !eb.Enabled() {
		return Line{Details: Details{Unit: "m"}}
	}

	segments := s.bandingSegments()
	var mm float64
	for i, selected := range eb.Positions {
		if selected && i < len(segments) {
			mm += segments[i]
		}
	}
	l := perMeterLine(fee, decimal.NewFromFloat(mm).Div(thousand), vatPercent)
	l.Details.Note = string(eb.Kind)
	if eb.Color != "" {
		l.Details.Note += ", " + eb.Color
	}
	return l
}

// perMeterLine converts a gross per-metre fee to net before multiplying, then
// rounds the category once.
func perMeterLine(fee worktop.Fee, meters decimal.Decimal, vatPercent float64) Line {
	netPerMeter := money.NetPerUnit(fee.GrossAt(vatPercent), vatPercent)
	return Line{
		Amount:  money.Proportional(meters.Mul(netPerMeter), vatPercent),
		Details: Details{Quantity: meters.InexactFloat64(), Unit: "m"},
	}
}

func fixedLine(fee worktop.Fee, count int, vatPercent float64) Line {
	return Line{
		Amount:  money.FixedFee(fee.GrossAt(vatPercent), count, vatPercent),
		Details: Details{Quantity: float64(count), Unit: "pcs"},
	}
}

func radiusCount(cfg worktop.Configuration) int {
	n := 0
	for _, c := range cfg.Corners {
		if c.IsRadiusCut() {
			n++
		}
	}
	return n
}

func angleCount(cfg worktop.Configuration) int {
	n := 0
	for _, c := range cfg.Corners {
		if c.IsAngleCut() {
			n++
		}
	}
	return n
}

func checkMaterial(m worktop.Material) error {
	switch {
	case m.Width <= 0 || m.Length <= 0:
		return fmt.Errorf("%w: material %d has no stock dimensions", ErrPrecondition, m.ID)
	case m.PricePerMeter < 0:
		return fmt.Errorf("%w: material %d has a negative price", ErrPrecondition, m.ID)
	case m.VATPercent < 0:
		return fmt.Errorf("%w: material %d has a negative VAT rate", ErrPrecondition, m.ID)
	}
	return nil
}

func checkConfiguration(cfg worktop.Configuration) error {
	d := cfg.Assembly.Dimensions()
	for _, v := range []float64{d.A, d.B, d.C, d.D, d.E, d.F} {
		if v < 0 {
			return fmt.Errorf("%w: negative dimension in %+v", ErrPrecondition, d)
		}
	}
	for i, c := range cfg.Cutouts {
		if c.Width < 0 || c.Height < 0 || c.OffsetEdge1 < 0 || c.OffsetEdge2 < 0 {
			return fmt.Errorf("%w: cutout %d has a negative measure", ErrPrecondition, i+1)
		}
	}
	return nil
}

// CheckFees rejects schedules holding negative fees.
func CheckFees(fees worktop.FeeSchedule) error {
	for _, f := range fees.Named() {
		if f.Fee.IsNegative() {
			return fmt.Errorf("%w: fee %s is negative", ErrPrecondition, f.Key)
		}
	}
	return nil
}
