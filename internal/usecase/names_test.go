package usecase

import (
	"context"
	"errors"
	"testing"
)

// fakeCleaner returns a canned mapping or error and records its input.
type fakeCleaner struct {
	mapping map[string]string
	err     error
	got     []string
	calls   int
}

func (f *fakeCleaner) CleanNames(ctx context.Context, names []string) (map[string]string, error) {
	f.calls++
	f.got = append([]string(nil), names...)
	return f.mapping, f.err
}

func TestCleanNames_NilCleanerYieldsIdentity(t *testing.T) {
	n := NewNameNormalizer(nil)

	mapping := n.CleanNames(context.Background(), []string{"a", "b"})
	if mapping["a"] != "a" || mapping["b"] != "b" {
		t.Errorf("mapping = %v, want identity", mapping)
	}
}

func TestCleanNames_CleanerErrorYieldsIdentity(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("model unavailable")}
	n := NewNameNormalizer(cleaner)

	mapping := n.CleanNames(context.Background(), []string{"a"})
	if mapping["a"] != "a" {
		t.Errorf("mapping[a] = %q, want identity fallback", mapping["a"])
	}
}

func TestCleanNames_PartialMappingIsMadeTotal(t *testing.T) {
	cleaner := &fakeCleaner{mapping: map[string]string{"a": "A cleaned"}}
	n := NewNameNormalizer(cleaner)

	mapping := n.CleanNames(context.Background(), []string{"a", "b", "c"})
	if mapping["a"] != "A cleaned" {
		t.Errorf("mapping[a] = %q, want cleaned value", mapping["a"])
	}
	if mapping["b"] != "b" || mapping["c"] != "c" {
		t.Errorf("missing keys must fall back to identity: %v", mapping)
	}
	if len(mapping) != 3 {
		t.Errorf("len(mapping) = %d, want 3 (total over inputs)", len(mapping))
	}
}

func TestCleanNames_BlankCleanedValueIsIgnored(t *testing.T) {
	cleaner := &fakeCleaner{mapping: map[string]string{"a": "  "}}
	n := NewNameNormalizer(cleaner)

	mapping := n.CleanNames(context.Background(), []string{"a"})
	if mapping["a"] != "a" {
		t.Errorf("mapping[a] = %q, want identity for blank cleaned name", mapping["a"])
	}
}

func TestCleanNames_EmptyInputSkipsCleaner(t *testing.T) {
	cleaner := &fakeCleaner{mapping: map[string]string{}}
	n := NewNameNormalizer(cleaner)

	mapping := n.CleanNames(context.Background(), nil)
	if len(mapping) != 0 {
		t.Errorf("mapping = %v, want empty", mapping)
	}
	if cleaner.calls != 0 {
		t.Errorf("cleaner called %d times, want 0", cleaner.calls)
	}
}
