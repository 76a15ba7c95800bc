package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/worktop/internal/pricing"
)

// WriteText writes a plain-text rendering of doc. Categories that cost
// nothing are left out of each item.
func WriteText(w io.Writer, doc Document) error {
	q := doc.Quote
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title(doc))
	if doc.ID != "" {
		fmt.Fprintf(&b, "Reference: %s\n", doc.ID)
	}
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", doc.CreatedAt.Format("2006-01-02"))
	}
	if doc.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", doc.Notes)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write quote header: %w", err)
	}

	for _, item := range q.Items {
		fmt.Fprintf(tw, "\n%s (%s, %s)\n", itemTitle(item), item.Assembly, item.MaterialName)
		fmt.Fprintf(tw, "\tQuantity\tNet\tVAT\tGross\t\n")
		for _, l := range item.Breakdown.Lines() {
			if l.Line.IsZero() {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t\n",
				CategoryLabel(l.Category),
				formatQuantity(l.Line.Details.Quantity), l.Line.Details.Unit,
				FormatAmount(l.Line.Net, item.Currency),
				FormatAmount(l.Line.VAT, item.Currency),
				FormatAmount(l.Line.Gross, item.Currency),
			)
		}
		fmt.Fprintf(tw, "Subtotal\t\t%s\t%s\t%s\t\n",
			FormatAmount(item.Totals.Net, item.Currency),
			FormatAmount(item.Totals.VAT, item.Currency),
			FormatAmount(item.Totals.Gross, item.Currency),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write quote items: %w", err)
	}

	b.Reset()
	if len(q.Skipped) > 0 {
		b.WriteString("\nNot included:\n")
		for _, s := range q.Skipped {
			fmt.Fprintf(&b, "  #%d %s: %s\n", s.Index+1, skippedName(s), skipLabels[s.Reason])
		}
	}
	fmt.Fprintf(&b, "\nNet: %s\n", FormatAmount(q.GrandTotalNet, q.Currency))
	fmt.Fprintf(&b, "VAT: %s\n", FormatAmount(q.GrandTotalVAT, q.Currency))
	fmt.Fprintf(&b, "Total: %s\n", FormatAmount(q.GrandTotalGross, q.Currency))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write quote totals: %w", err)
	}
	return nil
}

func skippedName(s pricing.Skipped) string {
	switch {
	case s.Label != "" && s.Assembly != "":
		return fmt.Sprintf("%s (%s)", s.Label, s.Assembly)
	case s.Label != "":
		return s.Label
	case s.Assembly != "":
		return string(s.Assembly)
	}
	return "configuration"
}
