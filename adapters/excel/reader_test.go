package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"faqreport/domain/core"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, path string, sheet string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatal(err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestDataReader_ReadsWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	writeTestWorkbook(t, path, "FAQ", [][]interface{}{
		{" Publicable ", "Respuesta"},
		{"SI", "hola"},
		{"NO", "chau"},
	})

	src, err := NewDataReader(path).Read(context.Background(), "FAQ")
	if err != nil {
		t.Fatal(err)
	}
	if src.Headers[0] != "Publicable" {
		t.Errorf("headers must be trimmed, got %q", src.Headers[0])
	}
	if len(src.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(src.Rows))
	}
	if src.Rows[0].Get(1) != "hola" {
		t.Errorf("row content mismatch: %v", src.Rows[0])
	}
}

func TestDataReader_DefaultsToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	writeTestWorkbook(t, path, "Sheet1", [][]interface{}{
		{"A"},
		{"1"},
	})

	src, err := NewDataReader(path).Read(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Rows) != 1 {
		t.Errorf("expected 1 data row, got %d", len(src.Rows))
	}
}

func TestDataReader_MissingFileIsFatal(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.xlsx")).Read(context.Background(), "")
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestDataReader_MissingSheetIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	writeTestWorkbook(t, path, "Sheet1", [][]interface{}{{"A"}, {"1"}})

	_, err := NewDataReader(path).Read(context.Background(), "NoExiste")
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestDataReader_HeaderOnlyIsNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.xlsx")
	writeTestWorkbook(t, path, "Sheet1", [][]interface{}{{"A", "B"}})

	_, err := NewDataReader(path).Read(context.Background(), "")
	if !errors.Is(err, core.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestDataReader_ReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.csv")
	csv := "Publicable,Respuesta\nSI,hola\nSI,chau\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewDataReader(path).Read(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Headers) != 2 || len(src.Rows) != 2 {
		t.Errorf("unexpected shape: %d headers, %d rows", len(src.Headers), len(src.Rows))
	}
	if src.Name != "faq" {
		t.Errorf("CSV table should be named after the file, got %q", src.Name)
	}
}
