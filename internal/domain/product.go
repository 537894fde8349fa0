package domain

// ProductRow is one parsed row of the uploaded product workbook.
// Barcode is the natural key; numeric coercion artifacts (a trailing ".0")
// are stripped during parsing and a price that fails to parse becomes 0.
type ProductRow struct {
	Barcode       string
	Name          string
	Price         float64
	PreviousPrice float64 // 0 means no previous price
	IsSale        bool
	ForcePrint    bool
	ForceOriginal bool
	Delete        bool
	SourceIndex   int // stable position in the original sheet
}

// SignSpec is the render-ready view of a product row. Two parallel
// sequences are derived per run (cleaned names / original names); they share
// membership and order and differ only in DisplayName.
type SignSpec struct {
	Barcode       string
	DisplayName   string
	Price         float64
	PreviousPrice float64
	IsSale        bool
}

// PriceOp is a single pending mutation against the price store.
// Delete wins over the price value when set.
type PriceOp struct {
	Barcode string
	Price   float64
	Delete  bool
}
