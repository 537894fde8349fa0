package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// A4 portrait, millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0

	// SignWidth and SignHeight are the fixed physical card dimensions.
	SignWidth  = 102.0
	SignHeight = 36.0

	columnGap = 0.3
	rowGap    = 0.35 // hairline between rows

	gridColumns = 2
)

// rowsPerPage is how many full card rows fit above the page's bottom edge.
var rowExtent float64 = (pageHeight - SignHeight) / (SignHeight + rowGap)
var rowsPerPage = int(rowExtent) + 1

// Engine lays signs onto A4 pages in a fixed two-column grid, paginating
// when the vertical extent is exhausted. It implements usecase.SignRenderer.
type Engine struct {
	fontsDir string
}

// NewEngine creates a layout engine loading fonts from fontsDir.
func NewEngine(fontsDir string) *Engine {
	return &Engine{fontsDir: fontsDir}
}

// Render draws the sign sequence in order, left-to-right then top-to-bottom,
// and returns the finished PDF. The last page is emitted even when partially
// filled. A failure on any card aborts the whole batch.
func (e *Engine) Render(signs []domain.SignSpec) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	useHeebo := registerFonts(doc, e.fontsDir)
	card := newCardRenderer(doc, useHeebo)

	doc.AddPage()
	currentPage := 0
	for i, sign := range signs {
		page, row, col := gridPosition(i)
		if page > currentPage {
			doc.AddPage()
			currentPage = page
		}
		x := float64(col) * (SignWidth + columnGap)
		y := float64(row) * (SignHeight + rowGap)
		if sign.IsSale {
			card.drawDiscount(x, y, sign)
		} else {
			card.drawStandard(x, y, sign)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

// gridPosition maps a 0-based sign index to its page, row and column.
func gridPosition(i int) (page, row, col int) {
	perPage := gridColumns * rowsPerPage
	page = i / perPage
	rem := i % perPage
	return page, rem / gridColumns, rem % gridColumns
}

// pageCount returns how many pages n signs occupy.
func pageCount(n int) int {
	if n == 0 {
		return 0
	}
	perPage := gridColumns * rowsPerPage
	return (n + perPage - 1) / perPage
}
