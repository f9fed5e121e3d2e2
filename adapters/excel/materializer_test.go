package excel

import (
	"context"
	"path/filepath"
	"testing"

	"faqreport/domain/table"
	"faqreport/ports"

	"github.com/xuri/excelize/v2"
)

var matHeaders = []string{"Publicable", "Respuesta"}

func matRows() []table.Row {
	return []table.Row{
		{"SI", "hola"},
		{"SI", "chau"},
	}
}

func sheetRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestSheetMaterializer_CreatesCategorySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	m, err := NewSheetMaterializer(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if err := m.Materialize(context.Background(), "FAQ_Ingresantes", matHeaders, matRows()); err != nil {
		t.Fatal(err)
	}

	rows := sheetRows(t, path, "FAQ_Ingresantes")
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Publicable" || rows[2][1] != "chau" {
		t.Errorf("sheet content mismatch: %v", rows)
	}
}

func TestSheetMaterializer_RewritesExistingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	m, err := NewSheetMaterializer(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	ctx := context.Background()
	stale := []table.Row{{"SI", "vieja 1"}, {"SI", "vieja 2"}, {"SI", "vieja 3"}}
	if err := m.Materialize(ctx, "FAQ_Sedes", matHeaders, stale); err != nil {
		t.Fatal(err)
	}
	if err := m.Materialize(ctx, "FAQ_Sedes", matHeaders, matRows()[:1]); err != nil {
		t.Fatal(err)
	}

	rows := sheetRows(t, path, "FAQ_Sedes")
	if len(rows) != 2 {
		t.Fatalf("stale rows must be cleared, got %d rows", len(rows))
	}
	if rows[1][1] != "hola" {
		t.Errorf("sheet content mismatch: %v", rows)
	}
}

func TestSheetMaterializer_CleanupClearKeepsSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	m, err := NewSheetMaterializer(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	ctx := context.Background()
	if err := m.Materialize(ctx, "FAQ_Sedes", matHeaders, matRows()); err != nil {
		t.Fatal(err)
	}
	if err := m.Cleanup(ctx, "FAQ_Sedes", ports.CleanupClear); err != nil {
		t.Fatal(err)
	}

	rows := sheetRows(t, path, "FAQ_Sedes")
	if len(rows) != 0 {
		t.Errorf("cleared sheet should have no rows, got %v", rows)
	}
}

func TestSheetMaterializer_CleanupDropRemovesSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	m, err := NewSheetMaterializer(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	ctx := context.Background()
	if err := m.Materialize(ctx, "FAQ_Ingresantes", matHeaders, matRows()); err != nil {
		t.Fatal(err)
	}
	if err := m.Materialize(ctx, "FAQ_Sedes", matHeaders, matRows()); err != nil {
		t.Fatal(err)
	}
	if err := m.Cleanup(ctx, "FAQ_Sedes", ports.CleanupDrop); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	idx, err := f.GetSheetIndex("FAQ_Sedes")
	if err != nil {
		t.Fatal(err)
	}
	if idx != -1 {
		t.Error("dropped sheet should be gone")
	}
}

func TestSheetMaterializer_CleanupMissingSheetIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	m, err := NewSheetMaterializer(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if err := m.Cleanup(context.Background(), "FAQ_Nunca", ports.CleanupClear); err != nil {
		t.Errorf("cleanup of a never-created sheet should be a no-op: %v", err)
	}
}
