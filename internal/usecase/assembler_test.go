package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/infrastructure/pricestore"
)

// fakeRenderer records every sign sequence it is asked to render.
type fakeRenderer struct {
	calls [][]domain.SignSpec
	err   error
}

func (f *fakeRenderer) Render(signs []domain.SignSpec) ([]byte, error) {
	f.calls = append(f.calls, signs)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func newAssembler(store domain.PriceStore, cleaner domain.NameCleaner, renderer SignRenderer) *Assembler {
	return NewAssembler(NewChangeTracker(store), NewNameNormalizer(cleaner), renderer)
}

func TestGenerate_FirstRunPrintsAndRecordsEverything(t *testing.T) {
	data := makeWorkbook(t, standardHeader(),
		[]interface{}{"100", "כוס זכוכית", "19.5", "", "", "", "", ""},
		[]interface{}{"200", "צלחת פורצלן", "45", "yes", "59.9", "", "", ""},
	)

	store := pricestore.NewMemoryStore()
	renderer := &fakeRenderer{}
	a := newAssembler(store, nil, renderer)

	out, err := a.Generate(context.Background(), data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out == nil {
		t.Fatal("Generate() = nil output, want artifacts")
	}

	if store.Size() != 2 {
		t.Errorf("store size = %d, want 2", store.Size())
	}
	if len(renderer.calls) != 2 {
		t.Fatalf("renderer called %d times, want 2 (cleaned and original)", len(renderer.calls))
	}
	if len(out.CleanedPDF) == 0 || len(out.OriginalPDF) == 0 {
		t.Error("both PDF variants must be produced")
	}
	if len(out.TrackingXLSX) == 0 {
		t.Error("tracking spreadsheet must be produced")
	}

	// The sale row must carry its flags into the sign sequence.
	signs := renderer.calls[0]
	if len(signs) != 2 {
		t.Fatalf("len(signs) = %d, want 2", len(signs))
	}
	if !signs[1].IsSale || signs[1].PreviousPrice != 59.9 {
		t.Errorf("sale sign = %+v, want IsSale with previous price", signs[1])
	}
}

func TestGenerate_SecondRunExcludesUnchangedRows(t *testing.T) {
	data := makeWorkbook(t, standardHeader(),
		[]interface{}{"100", "כוס זכוכית", "19.5", "", "", "", "", ""},
	)

	store := pricestore.NewMemoryStore()
	a := newAssembler(store, nil, &fakeRenderer{})

	if _, err := a.Generate(context.Background(), data); err != nil {
		t.Fatalf("first run: %v", err)
	}

	out, err := a.Generate(context.Background(), data)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if out != nil {
		t.Errorf("second run output = %+v, want nil (nothing to print)", out)
	}
}

func TestGenerate_EmptySheetIsAValidationError(t *testing.T) {
	data := makeWorkbook(t, standardHeader())

	renderer := &fakeRenderer{}
	a := newAssembler(pricestore.NewMemoryStore(), nil, renderer)

	out, err := a.Generate(context.Background(), data)
	if !errors.As(err, new(*domain.ValidationError)) {
		t.Fatalf("Generate() error = %v, want *ValidationError for empty sheet", err)
	}
	if out != nil {
		t.Errorf("output = %+v, want nil", out)
	}
	if len(renderer.calls) != 0 {
		t.Error("renderer must not run on validation failure")
	}
}

func TestGenerate_ForceOriginalKeepsInputName(t *testing.T) {
	data := makeWorkbook(t, standardHeader(),
		[]interface{}{"100", "כוס זכוכית", "19.5", "", "", "", "x", ""},
		[]interface{}{"200", "צלחת פורצלן", "45", "", "", "", "", ""},
	)

	cleaner := &fakeCleaner{mapping: map[string]string{
		"כוס זכוכית":   "כוס זכוכית מהודרת",
		"צלחת פורצלן": "צלחת פורצלן לבנה",
	}}
	renderer := &fakeRenderer{}
	a := newAssembler(pricestore.NewMemoryStore(), cleaner, renderer)

	out, err := a.Generate(context.Background(), data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out == nil {
		t.Fatal("Generate() = nil output")
	}

	// Forced rows never reach the cleaner.
	if len(cleaner.got) != 1 || cleaner.got[0] != "צלחת פורצלן" {
		t.Errorf("cleaner received %v, want only the non-forced name", cleaner.got)
	}

	cleaned := renderer.calls[0]
	if cleaned[0].DisplayName != "כוס זכוכית" {
		t.Errorf("forced row name = %q, want original kept", cleaned[0].DisplayName)
	}
	if cleaned[1].DisplayName != "צלחת פורצלן לבנה" {
		t.Errorf("cleaned row name = %q, want rewritten value", cleaned[1].DisplayName)
	}

	original := renderer.calls[1]
	if original[1].DisplayName != "צלחת פורצלן" {
		t.Errorf("original variant name = %q, want input name", original[1].DisplayName)
	}
}

func TestGenerate_MissingColumnsSurfaceAsValidationError(t *testing.T) {
	data := makeWorkbook(t, []interface{}{colBarcode, colName},
		[]interface{}{"100", "כוס"},
	)

	renderer := &fakeRenderer{}
	a := newAssembler(pricestore.NewMemoryStore(), nil, renderer)

	_, err := a.Generate(context.Background(), data)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Generate() error = %v, want *ValidationError", err)
	}
	if len(renderer.calls) != 0 {
		t.Error("renderer must not run on validation failure")
	}
}

func TestGenerate_RenderFailureAbortsRun(t *testing.T) {
	data := makeWorkbook(t, standardHeader(),
		[]interface{}{"100", "כוס", "19.5", "", "", "", "", ""},
	)

	renderer := &fakeRenderer{err: errors.New("font missing")}
	a := newAssembler(pricestore.NewMemoryStore(), nil, renderer)

	out, err := a.Generate(context.Background(), data)
	if err == nil {
		t.Fatal("Generate() error = nil, want render failure")
	}
	if out != nil {
		t.Errorf("output = %+v, want nil", out)
	}
}

func TestGenerate_TrackingSheetAppendsCleanedName(t *testing.T) {
	data := makeWorkbook(t, standardHeader(),
		[]interface{}{"100", "כוס זכוכית", "19.5", "", "", "", "", ""},
	)

	cleaner := &fakeCleaner{mapping: map[string]string{"כוס זכוכית": "כוס זכוכית מהודרת"}}
	a := newAssembler(pricestore.NewMemoryStore(), cleaner, &fakeRenderer{})

	out, err := a.Generate(context.Background(), data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out.TrackingXLSX))
	if err != nil {
		t.Fatalf("open tracking sheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header + 1 row", len(rows))
	}

	header := rows[0]
	if header[len(header)-1] != cleanedNameHeader {
		t.Errorf("last header cell = %q, want %q", header[len(header)-1], cleanedNameHeader)
	}
	dataRow := rows[1]
	if got := dataRow[len(dataRow)-1]; got != "כוס זכוכית מהודרת" {
		t.Errorf("cleaned name cell = %q, want rewritten value", got)
	}
}
