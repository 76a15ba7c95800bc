package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Quote"

var columns = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// WriteXLSX renders doc as a workbook with one row per charged category and
// the grand totals underneath.
func WriteXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol := columns[len(columns)-1]
	widths := []float64{6, 32, 16, 10, 8, 14, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title(doc)))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.title)

	if doc.ID != "" {
		f.SetCellValue(sheetName, "A2", "Ref: "+doc.ID)
	}
	if !doc.CreatedAt.IsZero() {
		f.SetCellValue(sheetName, "A3", "Date: "+doc.CreatedAt.Format("2006-01-02"))
	}
	if doc.Notes != "" {
		f.SetCellValue(sheetName, "D2", sanitizeExcelCell(doc.Notes))
	}

	headers := []string{"#", "Configuration", "Category", "Qty", "Unit", "Net", "VAT", "Gross"}
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+"5", h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", styles.header)

	q := doc.Quote
	row := 6
	for _, item := range q.Items {
		for _, l := range item.Breakdown.Lines() {
			if l.Line.IsZero() {
				continue
			}
			r := strconv.Itoa(row)
			f.SetCellValue(sheetName, "A"+r, item.Index+1)
			f.SetCellValue(sheetName, "B"+r, sanitizeExcelCell(itemTitle(item)+" "+item.MaterialName))
			f.SetCellValue(sheetName, "C"+r, CategoryLabel(l.Category))
			f.SetCellValue(sheetName, "D"+r, l.Line.Details.Quantity)
			f.SetCellValue(sheetName, "E"+r, l.Line.Details.Unit)
			f.SetCellValue(sheetName, "F"+r, l.Line.Net)
			f.SetCellValue(sheetName, "G"+r, l.Line.VAT)
			f.SetCellValue(sheetName, "H"+r, l.Line.Gross)
			f.SetCellStyle(sheetName, "A"+r, lastCol+r, styles.line)
			row++
		}

		r := strconv.Itoa(row)
		f.SetCellValue(sheetName, "C"+r, "Subtotal")
		f.SetCellValue(sheetName, "F"+r, item.Totals.Net)
		f.SetCellValue(sheetName, "G"+r, item.Totals.VAT)
		f.SetCellValue(sheetName, "H"+r, item.Totals.Gross)
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, styles.subtotal)
		row++
	}

	row++
	for _, total := range []struct {
		label string
		value int64
	}{
		{"Net", q.GrandTotalNet},
		{"VAT", q.GrandTotalVAT},
		{"Total", q.GrandTotalGross},
	} {
		r := strconv.Itoa(row)
		f.SetCellValue(sheetName, "G"+r, total.label+" ("+q.Currency+"):")
		f.SetCellStyle(sheetName, "G"+r, "G"+r, styles.summaryLabel)
		f.SetCellValue(sheetName, "H"+r, total.value)
		f.SetCellStyle(sheetName, "H"+r, "H"+r, styles.summaryValue)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title        int
	header       int
	line         int
	subtotal     int
	summaryLabel int
	summaryValue int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	// "# ##0" groups thousands with a space, like the text rendering.
	amountFormat := "# ##0"

	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&s.line, "line", &excelize.Style{
			Font:         &excelize.Font{Size: 10},
			Border:       thinBorders(),
			CustomNumFmt: &amountFormat,
		}},
		{&s.subtotal, "subtotal", &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 10},
			Border:       thinBorders(),
			CustomNumFmt: &amountFormat,
		}},
		{&s.summaryLabel, "summary label", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&s.summaryValue, "summary value", &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 11},
			CustomNumFmt: &amountFormat,
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return sheetStyles{}, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sanitizeExcelCell prefixes text that a spreadsheet would read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
