package pricestore

import (
	"context"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// NoopStore is the degraded price store selected at startup when Firestore
// is unreachable or unconfigured. Every lookup misses and writes are
// discarded, so every product prints and no dedupe state accumulates.
type NoopStore struct{}

// NewNoopStore creates a store that never remembers anything
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

// GetPrices reports every barcode as unknown.
func (s *NoopStore) GetPrices(ctx context.Context, barcodes []string) (map[string]float64, error) {
	return map[string]float64{}, nil
}

// Apply discards all operations.
func (s *NoopStore) Apply(ctx context.Context, ops []domain.PriceOp) error {
	return nil
}
