package render

import (
	"bytes"
	"testing"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

func TestGridGeometry(t *testing.T) {
	// 8 card rows fit an A4 page: 8*36 + 7 hairlines < 297 < 9 rows.
	if rowsPerPage != 8 {
		t.Fatalf("rowsPerPage = %d, want 8", rowsPerPage)
	}
}

func TestGridPosition(t *testing.T) {
	perPage := gridColumns * rowsPerPage

	testCases := []struct {
		index                int
		wantPage, wantRow, wantCol int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{2, 0, 1, 0},
		{3, 0, 1, 1},
		{perPage - 1, 0, rowsPerPage - 1, 1},
		{perPage, 1, 0, 0},
		{perPage + 3, 1, 1, 1},
		{2*perPage + 2, 2, 1, 0},
	}

	for _, tc := range testCases {
		page, row, col := gridPosition(tc.index)
		if page != tc.wantPage || row != tc.wantRow || col != tc.wantCol {
			t.Errorf("gridPosition(%d) = (%d,%d,%d), want (%d,%d,%d)",
				tc.index, page, row, col, tc.wantPage, tc.wantRow, tc.wantCol)
		}
	}
}

func TestPageCount(t *testing.T) {
	perPage := gridColumns * rowsPerPage

	testCases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{perPage, 1},
		{perPage + 1, 2},
		{3 * perPage, 3},
	}

	for _, tc := range testCases {
		if got := pageCount(tc.n); got != tc.want {
			t.Errorf("pageCount(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	engine := NewEngine("") // no fonts dir: built-in fallback

	signs := []domain.SignSpec{
		{Barcode: "7290000000001", DisplayName: "Glass Tumbler 250 ml", Price: 19.9},
		{Barcode: "7290000000002", DisplayName: "Ceramic Bowl", Price: 45, PreviousPrice: 59.9, IsSale: true},
		{Barcode: "7290000000003", DisplayName: "Bath Towel 70x140", Price: 89, IsSale: true},
	}

	pdf, err := engine.Render(signs)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("Render() returned empty output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestRender_EmptySequence(t *testing.T) {
	engine := NewEngine("")

	pdf, err := engine.Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// A single blank page is still a valid document.
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}
