package gemini

import (
	"encoding/json"
	"strings"
)

// parseKind tags the outcome of decoding one model response.
type parseKind int

const (
	// parsedObject means the response decoded directly to a non-empty
	// JSON object.
	parsedObject parseKind = iota
	// parsedRecoveredList means the response was a JSON list that could be
	// folded back into an original→cleaned mapping.
	parsedRecoveredList
	// parsedUnrecoverable means neither decode nor list recovery succeeded.
	parsedUnrecoverable
)

// parseResult is the tagged outcome of parseResponse. Mapping is non-nil
// only for the two recoverable kinds.
type parseResult struct {
	Kind    parseKind
	Mapping map[string]string
}

// parseResponse decodes the model's textual output into a name mapping.
// Models wrap JSON in markdown fences and occasionally return a list of
// pair objects instead of one object; both shapes are handled here so the
// network layer stays free of recovery logic.
func parseResponse(text string) parseResult {
	cleaned := stripCodeFence(text)

	var raw interface{}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return parseResult{Kind: parsedUnrecoverable}
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		// An object with no usable entries counts as a failed attempt so
		// the forced-JSON retry still happens.
		if m := stringifyValues(v); len(m) > 0 {
			return parseResult{Kind: parsedObject, Mapping: m}
		}
	case []interface{}:
		if m, ok := recoverFromList(v); ok {
			return parseResult{Kind: parsedRecoveredList, Mapping: m}
		}
	}
	return parseResult{Kind: parsedUnrecoverable}
}

// stripCodeFence removes a surrounding markdown code block (``` or ```json)
// when present.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	if idx := strings.Index(cleaned, "\n"); idx != -1 {
		cleaned = cleaned[idx+1:]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// recoverFromList folds a JSON list back into a mapping. Elements that are
// objects with "original"/"cleaned" keys (any case) contribute that pair;
// other objects contribute their key→value entries. A single non-object
// element fails the whole recovery — a list of bare strings cannot be
// mapped back to inputs safely.
func recoverFromList(items []interface{}) (map[string]string, bool) {
	recovered := make(map[string]string)
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}

		var origKey, cleanKey string
		for k := range obj {
			switch strings.ToLower(k) {
			case "original":
				origKey = k
			case "cleaned":
				cleanKey = k
			}
		}

		if origKey != "" && cleanKey != "" {
			orig, okO := obj[origKey].(string)
			clean, okC := obj[cleanKey].(string)
			if okO && okC {
				recovered[orig] = clean
				continue
			}
		}

		// Fall back to treating the object as mapping entries directly,
		// e.g. a list of single-key {original: cleaned} objects.
		for k, v := range obj {
			if s, ok := v.(string); ok {
				recovered[k] = s
			}
		}
	}

	if len(recovered) == 0 {
		return nil, false
	}
	return recovered, true
}

// stringifyValues keeps only string-valued entries of a decoded object.
func stringifyValues(obj map[string]interface{}) map[string]string {
	m := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			m[k] = s
		}
	}
	return m
}
