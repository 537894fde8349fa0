package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// NameNormalizer turns the batch name-cleanup call into a total mapping:
// every submitted name resolves to some display name, falling back to
// identity whenever the cleaner is missing, fails, or returns a partial or
// blank result. The pipeline never blocks on the rewrite service.
type NameNormalizer struct {
	cleaner domain.NameCleaner
}

// NewNameNormalizer creates a normalizer. A nil cleaner is valid and yields
// identity mappings (cleaning disabled).
func NewNameNormalizer(cleaner domain.NameCleaner) *NameNormalizer {
	return &NameNormalizer{cleaner: cleaner}
}

// CleanNames returns a mapping defined for every input name.
func (n *NameNormalizer) CleanNames(ctx context.Context, names []string) map[string]string {
	mapping := make(map[string]string, len(names))
	for _, name := range names {
		mapping[name] = name
	}

	if len(names) == 0 {
		return mapping
	}
	if n.cleaner == nil {
		log.Printf("[NAMES] Name cleaner not configured, keeping original names")
		return mapping
	}

	log.Printf("[NAMES] Sending %d names for cleaning", len(names))
	cleaned, err := n.cleaner.CleanNames(ctx, names)
	if err != nil {
		log.Printf("[NAMES] Cleaning failed: %v. Keeping original names", err)
		return mapping
	}

	for _, name := range names {
		if v, ok := cleaned[name]; ok && strings.TrimSpace(v) != "" {
			mapping[name] = v
		}
	}
	return mapping
}
