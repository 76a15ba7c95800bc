package pricing

import (
	"fmt"

	"github.com/Simplici0/worktop/internal/worktop"
)

// MaterialLookup resolves material ids; worktop.Catalog implements it.
type MaterialLookup interface {
	Material(id int64) (worktop.Material, bool)
}

// SkipReason explains why a configuration produced no line item.
type SkipReason string

const (
	SkipNoAssembly      SkipReason = "no_assembly"
	SkipNotPriceable    SkipReason = "not_priceable"
	SkipMissingMaterial SkipReason = "missing_material"
)

// Skipped records a configuration that was left out of the quote.
type Skipped struct {
	Index    int                  `json:"index"`
	Label    string               `json:"label,omitempty"`
	Assembly worktop.AssemblyType `json:"assembly,omitempty"`
	Reason   SkipReason           `json:"reason"`
}

// Quote is the priced result of a whole order.
type Quote struct {
	Items           []QuoteLineItem `json:"items"`
	Skipped         []Skipped       `json:"skipped,omitempty"`
	GrandTotalNet   int64           `json:"grand_total_net"`
	GrandTotalVAT   int64           `json:"grand_total_vat"`
	GrandTotalGross int64           `json:"grand_total_gross"`
	Currency        string          `json:"currency"`
}

// ComputeQuote prices every priceable configuration in order.
//
// Straight splices and U joins have no pricing model yet and are listed in
// Skipped as not priceable, as are configurations whose material cannot be
// found. A precondition violation anywhere fails the whole call.
func ComputeQuote(cfgs []worktop.Configuration, materials MaterialLookup, fees worktop.FeeSchedule) (Quote, error) {
	if err := CheckFees(fees); err != nil {
		return Quote{}, err
	}

	q := Quote{Items: make([]QuoteLineItem, 0, len(cfgs))}
	for i, cfg := range cfgs {
		if reason, skip := skipReason(cfg, materials); skip {
			q.Skipped = append(q.Skipped, Skipped{
				Index:    i,
				Label:    cfg.Label,
				Assembly: cfg.AssemblyType(),
				Reason:   reason,
			})
			continue
		}

		m, _ := materials.Material(cfg.MaterialID)
		item, err := Calculate(cfg, m, fees)
		if err != nil {
			return Quote{}, fmt.Errorf("configuration %d: %w", i+1, err)
		}
		item.Index = i

		q.Items = append(q.Items, item)
		q.GrandTotalNet += item.Totals.Net
		q.GrandTotalVAT += item.Totals.VAT
		q.GrandTotalGross += item.Totals.Gross
		q.Currency = m.Currency
	}

	return q, nil
}

func skipReason(cfg worktop.Configuration, materials MaterialLookup) (SkipReason, bool) {
	switch {
	case cfg.Assembly == nil:
		return SkipNoAssembly, true
	case !worktop.IsPriceable(cfg.Assembly):
		return SkipNotPriceable, true
	}
	if materials == nil || cfg.MaterialID == 0 {
		return SkipMissingMaterial, true
	}
	if _, ok := materials.Material(cfg.MaterialID); !ok {
		return SkipMissingMaterial, true
	}
	return "", false
}
