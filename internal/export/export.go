// Package export renders saved quotes for customers: a plain-text summary
// and an XLSX workbook.
package export

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/worktop/internal/pricing"
)

// Document is a quote as handed to a renderer.
type Document struct {
	ID        string
	Title     string
	Notes     string
	CreatedAt time.Time
	Quote     pricing.Quote
}

var categoryLabels = map[pricing.Category]string{
	pricing.CategoryMaterial:    "Material",
	pricing.CategoryCrossCut:    "Cross cut",
	pricing.CategoryLengthCut:   "Length cut",
	pricing.CategoryRadiusCut:   "Radius cut",
	pricing.CategoryAngleCut:    "Angle cut",
	pricing.CategoryCutout:      "Cutout",
	pricing.CategoryEdgeBanding: "Edge banding",
	pricing.CategoryJoin:        "Join",
}

var skipLabels = map[pricing.SkipReason]string{
	pricing.SkipNoAssembly:      "no assembly selected",
	pricing.SkipNotPriceable:    "assembly cannot be priced",
	pricing.SkipMissingMaterial: "material not found",
}

// CategoryLabel returns the display name of c.
func CategoryLabel(c pricing.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// FormatAmount groups thousands with spaces, e.g. "26 000 HUF".
func FormatAmount(amount int64, currency string) string {
	s := humanize.FormatInteger("# ###.", int(amount))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func itemTitle(item pricing.QuoteLineItem) string {
	title := "#" + strconv.Itoa(item.Index+1)
	if item.Label != "" {
		title += " " + item.Label
	}
	return title
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func title(doc Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return "Worktop quote"
}
