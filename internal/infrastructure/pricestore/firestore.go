package pricestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

const (
	// Firestore caps batched reads and atomic write batches.
	readChunkSize  = 500
	writeChunkSize = 400

	priceField = "price"
)

// FirestoreStore persists last-known prices in a Firestore collection,
// one document per barcode.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore connects to Firestore. Callers should fall back to a
// NoopStore when this fails; an unreachable store must not sink the run.
func NewFirestoreStore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &FirestoreStore{client: client, collection: collection}, nil
}

// GetPrices fetches stored prices for the given barcodes in chunks of at
// most 500 document references per round-trip.
func (s *FirestoreStore) GetPrices(ctx context.Context, barcodes []string) (map[string]float64, error) {
	col := s.client.Collection(s.collection)
	refs := make([]*firestore.DocumentRef, len(barcodes))
	for i, b := range barcodes {
		refs[i] = col.Doc(b)
	}

	prices := make(map[string]float64)
	for _, chunk := range chunkRefs(refs, readChunkSize) {
		snaps, err := s.client.GetAll(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		for _, snap := range snaps {
			if !snap.Exists() {
				continue
			}
			if v, ok := snap.Data()[priceField].(float64); ok {
				prices[snap.Ref.ID] = v
			}
		}
	}

	log.Printf("[FIRESTORE] Fetched %d stored prices for %d barcodes", len(prices), len(barcodes))
	return prices, nil
}

// Apply commits upserts and deletes in batches of at most 400 operations,
// each batch committed before the next begins.
func (s *FirestoreStore) Apply(ctx context.Context, ops []domain.PriceOp) error {
	col := s.client.Collection(s.collection)
	for _, chunk := range chunkOps(ops, writeChunkSize) {
		batch := s.client.Batch()
		for _, op := range chunk {
			ref := col.Doc(op.Barcode)
			if op.Delete {
				batch.Delete(ref)
			} else {
				batch.Set(ref, map[string]interface{}{priceField: op.Price})
			}
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if len(ops) > 0 {
		log.Printf("[FIRESTORE] Applied %d price operations", len(ops))
	}
	return nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func chunkRefs(refs []*firestore.DocumentRef, size int) [][]*firestore.DocumentRef {
	var chunks [][]*firestore.DocumentRef
	for start := 0; start < len(refs); start += size {
		end := start + size
		if end > len(refs) {
			end = len(refs)
		}
		chunks = append(chunks, refs[start:end])
	}
	return chunks
}

func chunkOps(ops []domain.PriceOp, size int) [][]domain.PriceOp {
	var chunks [][]domain.PriceOp
	for start := 0; start < len(ops); start += size {
		end := start + size
		if end > len(ops) {
			end = len(ops)
		}
		chunks = append(chunks, ops[start:end])
	}
	return chunks
}
