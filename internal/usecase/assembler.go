package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// cleanedNameHeader is the column appended to the tracking spreadsheet.
const cleanedNameHeader = "Cleaned Name"

// SignRenderer renders a sign sequence into a finished PDF.
type SignRenderer interface {
	Render(signs []domain.SignSpec) ([]byte, error)
}

// Output carries the three generated artifacts of one run.
type Output struct {
	CleanedPDF   []byte
	OriginalPDF  []byte
	TrackingXLSX []byte
}

// Assembler orchestrates a full run: parse, filter, clean names, render
// both PDF variants, and produce the name-tracking spreadsheet.
type Assembler struct {
	tracker  *ChangeTracker
	names    *NameNormalizer
	renderer SignRenderer
}

// NewAssembler wires the pipeline stages together.
func NewAssembler(tracker *ChangeTracker, names *NameNormalizer, renderer SignRenderer) *Assembler {
	return &Assembler{tracker: tracker, names: names, renderer: renderer}
}

// Generate runs the whole pipeline over raw workbook bytes. It returns
// (nil, nil) when validation succeeds but no product needs a sign.
// Validation failures surface as *domain.ValidationError.
func (a *Assembler) Generate(ctx context.Context, xlsxData []byte) (*Output, error) {
	wb, err := ParseWorkbook(xlsxData)
	if err != nil {
		return nil, err
	}

	kept, err := a.tracker.Filter(ctx, wb.Products)
	if err != nil {
		return nil, err
	}
	if len(kept) == 0 {
		log.Printf("[ASSEMBLER] No items to print (all filtered out)")
		return nil, nil
	}

	mapping := a.names.CleanNames(ctx, distinctNonForcedNames(kept))

	cleanedSigns := make([]domain.SignSpec, 0, len(kept))
	originalSigns := make([]domain.SignSpec, 0, len(kept))
	finalNames := make(map[int]string, len(kept))
	for _, row := range kept {
		spec := domain.SignSpec{
			Barcode:       row.Barcode,
			DisplayName:   row.Name,
			Price:         row.Price,
			PreviousPrice: row.PreviousPrice,
			IsSale:        row.IsSale,
		}
		originalSigns = append(originalSigns, spec)

		if !row.ForceOriginal {
			if cleaned, ok := mapping[row.Name]; ok {
				spec.DisplayName = cleaned
			}
		}
		cleanedSigns = append(cleanedSigns, spec)
		finalNames[row.SourceIndex] = spec.DisplayName
	}

	log.Printf("[ASSEMBLER] Rendering %d signs (cleaned variant)", len(cleanedSigns))
	cleanedPDF, err := a.renderer.Render(cleanedSigns)
	if err != nil {
		return nil, fmt.Errorf("render cleaned variant: %w", err)
	}
	log.Printf("[ASSEMBLER] Rendering %d signs (original variant)", len(originalSigns))
	originalPDF, err := a.renderer.Render(originalSigns)
	if err != nil {
		return nil, fmt.Errorf("render original variant: %w", err)
	}

	tracking, err := writeTrackingSheet(wb, kept, finalNames)
	if err != nil {
		return nil, fmt.Errorf("write tracking sheet: %w", err)
	}

	return &Output{
		CleanedPDF:   cleanedPDF,
		OriginalPDF:  originalPDF,
		TrackingXLSX: tracking,
	}, nil
}

// distinctNonForcedNames collects, in first-seen order, the names that will
// actually be submitted for cleaning.
func distinctNonForcedNames(rows []domain.ProductRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if row.ForceOriginal || row.Name == "" || seen[row.Name] {
			continue
		}
		seen[row.Name] = true
		names = append(names, row.Name)
	}
	return names
}

// writeTrackingSheet reproduces the filtered input rows and appends the
// final display name used in the cleaned variant.
func writeTrackingSheet(wb *Workbook, kept []domain.ProductRow, finalNames map[int]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, len(wb.Headers)+1)
	for _, h := range wb.Headers {
		header = append(header, h)
	}
	header = append(header, cleanedNameHeader)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range kept {
		cells := make([]interface{}, len(wb.Headers)+1)
		raw := wb.Rows[row.SourceIndex]
		for j := range wb.Headers {
			if j < len(raw) {
				cells[j] = raw[j]
			} else {
				cells[j] = ""
			}
		}
		cells[len(wb.Headers)] = finalNames[row.SourceIndex]

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
