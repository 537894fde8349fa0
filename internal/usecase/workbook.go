package usecase

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// Column headers of the source workbook, as exported by the ERP.
const (
	colPrice         = "מכירה"
	colName          = "שם פריט"
	colBarcode       = "ברקוד"
	colSale          = "מבצע"
	colPrevPrice     = "מחיר קודם"
	colForcePrint    = "אלץ הדפסה"
	colForceOriginal = "אלץ שם מקורי"
	colDelete        = "מחק"
)

var requiredColumns = []string{colPrice, colName, colBarcode}

// Workbook is the parsed product sheet. Raw header/row strings are retained
// so the tracking spreadsheet can reproduce the filtered input verbatim.
type Workbook struct {
	Headers  []string
	Rows     [][]string
	Products []domain.ProductRow

	columns map[string]int
}

// ParseWorkbook reads the first sheet of an xlsx stream into typed product
// rows. It fails with a *domain.ValidationError when the sheet is empty or
// a mandatory column is missing, naming the absent columns.
func ParseWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ValidationError{Reason: "the Excel file contains no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &domain.ValidationError{Reason: "the Excel file contains no data"}
	}

	wb := &Workbook{columns: make(map[string]int)}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		wb.Headers = append(wb.Headers, h)
		if _, seen := wb.columns[h]; !seen {
			wb.columns[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := wb.columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingColumnsError(missing)
	}

	for _, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		index := len(wb.Rows)
		wb.Rows = append(wb.Rows, raw)
		wb.Products = append(wb.Products, domain.ProductRow{
			Barcode:       NormalizeBarcode(wb.cell(raw, colBarcode)),
			Name:          wb.cell(raw, colName),
			Price:         ParsePrice(wb.cell(raw, colPrice)),
			PreviousPrice: ParsePrice(wb.cell(raw, colPrevPrice)),
			IsSale:        wb.flag(raw, colSale),
			ForcePrint:    wb.flag(raw, colForcePrint),
			ForceOriginal: wb.flag(raw, colForceOriginal),
			Delete:        wb.flag(raw, colDelete),
			SourceIndex:   index,
		})
	}

	if len(wb.Products) == 0 {
		return nil, &domain.ValidationError{Reason: "the Excel file contains no data"}
	}

	return wb, nil
}

// cell returns the trimmed value of the named column for a raw row, or ""
// when the column is absent or the row is short.
func (wb *Workbook) cell(raw []string, col string) string {
	idx, ok := wb.columns[col]
	if !ok || idx >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[idx])
}

// flag treats any non-blank cell as true.
func (wb *Workbook) flag(raw []string, col string) bool {
	return wb.cell(raw, col) != ""
}

func isBlankRow(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// NormalizeBarcode strips the trailing ".0" left behind when a numeric cell
// is coerced to text. Applying it twice is a no-op.
func NormalizeBarcode(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, ".0")
}

// ParsePrice coerces a cell to a price. Failures never propagate: missing
// or malformed values become 0.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
