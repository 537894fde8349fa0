package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

//go:embed fewshot.json
var fewShotExamples string

// generator abstracts the single Gemini call so tests can substitute a fake
// model without a network round-trip.
type generator interface {
	generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Cleaner rewrites raw product names for signage display via a single
// batched Gemini call with one retry. It implements domain.NameCleaner.
type Cleaner struct {
	gen         generator
	rateLimiter *rate.Limiter
}

// NewCleaner creates a Gemini-backed name cleaner.
func NewCleaner(ctx context.Context, apiKey, model string) (*Cleaner, error) {
	if apiKey == "" {
		return nil, domain.ErrCleanerUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCleanerUnavailable, err)
	}

	return &Cleaner{
		gen: &genaiGenerator{client: client, model: model},
		// Free-tier Gemini quota is about 10 requests per minute; a burst
		// of 2 covers the attempt+retry pair of a single batch.
		rateLimiter: rate.NewLimiter(rate.Limit(10.0/60.0), 2),
	}, nil
}

// CleanNames sends the whole batch in one prompt and returns whatever
// mapping could be parsed out of the response. The mapping may be partial;
// totality is the caller's concern. Protocol:
//
//	attempt 1: prompt with the Google Search tool enabled
//	attempt 2: same prompt + plain-object instruction, JSON output forced
//
// Both attempts failing returns domain.ErrNoUsableMapping.
func (c *Cleaner) CleanNames(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	prompt, err := buildPrompt(names)
	if err != nil {
		return nil, err
	}

	// Attempt 1: with the search tool, so coded/ambiguous names can be
	// resolved against the live web.
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	text, err := c.gen.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		log.Printf("[GEMINI] Attempt 1 request failed: %v", err)
	} else if result := parseResponse(text); result.Kind != parsedUnrecoverable {
		logRecovery(result, "attempt 1")
		return result.Mapping, nil
	} else {
		log.Printf("[GEMINI] Attempt 1 response is not a valid object or recoverable list")
	}

	// Attempt 2: no tools, forced JSON, explicit object-shape instruction.
	log.Printf("[GEMINI] Retrying with forced JSON structure (no tools)")
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	retryPrompt := prompt + "\n\nIMPORTANT: Previous attempt failed. You MUST return a simple JSON object mapping original name -> cleaned name. Do not return a list."
	text, err = c.gen.generate(ctx, retryPrompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		log.Printf("[GEMINI] Attempt 2 request failed: %v", err)
		return nil, domain.ErrNoUsableMapping
	}
	if result := parseResponse(text); result.Kind != parsedUnrecoverable {
		logRecovery(result, "attempt 2")
		return result.Mapping, nil
	}

	log.Printf("[GEMINI] All attempts failed to produce a usable mapping")
	return nil, domain.ErrNoUsableMapping
}

func logRecovery(result parseResult, attempt string) {
	if result.Kind == parsedRecoveredList {
		log.Printf("[GEMINI] Recovered %d entries from a list-shaped response (%s)", len(result.Mapping), attempt)
	}
}

// buildPrompt renders the batched rewrite instructions. The input list is
// embedded as JSON so names containing quotes or newlines survive intact.
func buildPrompt(names []string) (string, error) {
	inputJSON, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to encode name batch: %w", err)
	}

	return fmt.Sprintf(`You are an expert retail copywriter for a high-end home goods store.
Your task is to reformat and clean raw product names from an ERP system for display on elegant customized shelf signage.

### Goal
Transform raw, messy data into clean, professional, and inviting product names.

### Strict Rules
1. **Use Your Tools**: If a name contains a barcode, code, or is ambiguous (e.g. '72900123', 'MKT-50'), USE GOOGLE SEARCH to find the real product name.
2. **Remove Noise**: SCRUB all internal codes, SKUs, catalogue IDs (e.g., '7290...', 'MKT123', '(24)', 'OH-029'), and irrelevant technical info.
3. **Fix Syntax**: Correct spacing, punctuation, and Hebrew grammar. Remove double spaces, weird dashes, etc.
4. **Standardize Format**: Use the multiplication sign "×" instead of "X" or "*" for dimensions (e.g., "20×20 cm") and format units nicely (e.g., "100 מ״ל" or "1.5 ליטר").
5. **Hebrew Focus**: Ensure the text flows naturally in Hebrew.
6. **Keep Essentials**: Preserve brand names (if recognizable/premium) and key attributes (color, size, material).
7. **JSON Output**: You must return ONLY a JSON object mapping Original Name -> Cleaned Name.

### Few-Shot Examples (Learn from these patterns)
%s

### Input List (Clean these)
%s

### Output JSON
`, fewShotExamples, string(inputJSON)), nil
}

// genaiGenerator is the real model call.
type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
