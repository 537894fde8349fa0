package pricestore

import (
	"context"
	"sync"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// MemoryStore is a thread-safe in-memory price store. It backs tests and
// local development runs where no Firestore project is configured.
type MemoryStore struct {
	data  map[string]float64
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]float64),
	}
}

// GetPrices returns stored prices for the given barcodes; unknown barcodes
// are absent from the result.
func (s *MemoryStore) GetPrices(ctx context.Context, barcodes []string) (map[string]float64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	prices := make(map[string]float64)
	for _, b := range barcodes {
		if v, ok := s.data[b]; ok {
			prices[b] = v
		}
	}
	return prices, nil
}

// Apply performs upserts and deletes. Deleting an absent barcode is a no-op.
func (s *MemoryStore) Apply(ctx context.Context, ops []domain.PriceOp) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, op := range ops {
		if op.Delete {
			delete(s.data, op.Barcode)
		} else {
			s.data[op.Barcode] = op.Price
		}
	}
	return nil
}

// Size returns the current number of records (for tests/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
