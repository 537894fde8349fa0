package usecase

import (
	"context"
	"log"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// ChangeTracker decides which rows need a freshly printed sign by comparing
// against the last-known-price store, and reconciles the store afterwards.
type ChangeTracker struct {
	store domain.PriceStore
}

// NewChangeTracker creates a tracker over the given price store.
func NewChangeTracker(store domain.PriceStore) *ChangeTracker {
	return &ChangeTracker{store: store}
}

// Filter returns the rows that need a sign, preserving input order:
//
//	delete flag   → always printed; the stored record is removed
//	force print   → always printed; the store is left untouched
//	otherwise     → printed when the barcode is new or its price changed,
//	                and the new price is recorded
//
// A store read failure degrades to printing everything and persisting
// nothing; dedupe accuracy is traded for availability.
func (t *ChangeTracker) Filter(ctx context.Context, rows []domain.ProductRow) ([]domain.ProductRow, error) {
	barcodes := make([]string, 0, len(rows))
	for _, row := range rows {
		barcodes = append(barcodes, row.Barcode)
	}

	stored, err := t.store.GetPrices(ctx, barcodes)
	if err != nil {
		log.Printf("[TRACKER] Could not read price store: %v. Printing all %d rows without persistence", err, len(rows))
		return rows, nil
	}

	var kept []domain.ProductRow
	var ops []domain.PriceOp
	for _, row := range rows {
		switch {
		case row.Delete:
			kept = append(kept, row)
			ops = append(ops, domain.PriceOp{Barcode: row.Barcode, Delete: true})
			log.Printf("[TRACKER] Product %s marked for deletion", row.Barcode)
		case row.ForcePrint:
			kept = append(kept, row)
		default:
			prev, known := stored[row.Barcode]
			if known && prev == row.Price {
				continue
			}
			kept = append(kept, row)
			ops = append(ops, domain.PriceOp{Barcode: row.Barcode, Price: row.Price})
		}
	}

	if err := t.store.Apply(ctx, ops); err != nil {
		// Losing bookkeeping only causes over-printing on the next run.
		log.Printf("[TRACKER] Could not persist %d price operations: %v", len(ops), err)
	}

	log.Printf("[TRACKER] Filtered %d products down to %d for printing", len(rows), len(kept))
	return kept, nil
}
