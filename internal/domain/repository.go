package domain

import "context"

// PriceStore is the keyed last-known-price store used for sign dedupe.
// Implementations batch reads and writes at whatever chunk size their
// provider imposes; Apply commits each chunk before starting the next.
type PriceStore interface {
	// GetPrices returns last known prices for the given barcodes.
	// Barcodes with no record are simply absent from the result.
	GetPrices(ctx context.Context, barcodes []string) (map[string]float64, error)

	// Apply performs the given upserts and deletes. Deleting a barcode
	// that has no record is not an error.
	Apply(ctx context.Context, ops []PriceOp) error
}

// NameCleaner rewrites raw product names for display. A single call covers
// the whole batch; the returned mapping may be partial, callers make it
// total by falling back to identity.
type NameCleaner interface {
	CleanNames(ctx context.Context, names []string) (map[string]string, error)
}
