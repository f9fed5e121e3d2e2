package excel

import (
	"context"
	"fmt"
	"log"
	"os"

	"faqreport/domain/table"
	"faqreport/ports"

	"github.com/xuri/excelize/v2"
)

// SheetMaterializer writes category buckets as sheets of a workbook, one
// sheet per category, named exactly as the category. The workbook is held
// open across Materialize/Cleanup calls and saved after every mutation.
type SheetMaterializer struct {
	path string
	f    *excelize.File
}

// NewSheetMaterializer opens the destination workbook, creating a new one
// when the file does not exist yet
func NewSheetMaterializer(path string) (*SheetMaterializer, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
		return &SheetMaterializer{path: path, f: f}, nil
	}
	return &SheetMaterializer{path: path, f: excelize.NewFile()}, nil
}

// Materialize creates or clears the category sheet, then writes the shared
// header row (bold) followed by the bucket rows, auto-sizing columns.
func (m *SheetMaterializer) Materialize(ctx context.Context, category string, headers []string, rows []table.Row) error {
	if err := m.ensureSheet(category); err != nil {
		return err
	}

	if err := m.f.SetSheetRow(category, "A1", rowToInterface(headers)); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to build cell reference: %w", err)
		}
		if err := m.f.SetSheetRow(category, cell, rowToInterface(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := m.boldHeader(category, len(headers)); err != nil {
		return err
	}
	if err := m.autoSizeColumns(category, headers, rows); err != nil {
		return err
	}

	if err := m.save(); err != nil {
		return err
	}
	log.Printf("[SheetMaterializer] Sheet %q written (%d rows)", category, len(rows))
	return nil
}

// Cleanup handles a category that produced no rows this run: clear empties a
// pre-existing sheet, drop removes it. A sheet that never existed is a no-op.
func (m *SheetMaterializer) Cleanup(ctx context.Context, category string, policy ports.CleanupPolicy) error {
	idx, err := m.f.GetSheetIndex(category)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", category, err)
	}
	if idx == -1 {
		return nil
	}

	if policy == ports.CleanupDrop {
		// The workbook must keep at least one sheet
		if len(m.f.GetSheetList()) > 1 {
			if err := m.f.DeleteSheet(category); err != nil {
				return fmt.Errorf("failed to delete sheet %q: %w", category, err)
			}
			if err := m.save(); err != nil {
				return err
			}
			log.Printf("[SheetMaterializer] Sheet %q deleted", category)
			return nil
		}
		log.Printf("[SheetMaterializer] Sheet %q is the last sheet, clearing instead of deleting", category)
	}

	if err := m.clearSheet(category); err != nil {
		return err
	}
	if err := m.save(); err != nil {
		return err
	}
	log.Printf("[SheetMaterializer] Sheet %q cleared", category)
	return nil
}

// save persists the workbook after every mutation so runs triggered by a
// long-lived process land on disk immediately
func (m *SheetMaterializer) save() error {
	if err := m.f.SaveAs(m.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", m.path, err)
	}
	return nil
}

// Close releases the workbook handle
func (m *SheetMaterializer) Close() error {
	return m.f.Close()
}

// ensureSheet makes category an existing, empty sheet
func (m *SheetMaterializer) ensureSheet(category string) error {
	idx, err := m.f.GetSheetIndex(category)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", category, err)
	}
	if idx == -1 {
		if _, err := m.f.NewSheet(category); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", category, err)
		}
		return nil
	}
	return m.clearSheet(category)
}

// clearSheet removes all populated rows from a sheet
func (m *SheetMaterializer) clearSheet(category string) error {
	rows, err := m.f.GetRows(category)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", category, err)
	}
	for range rows {
		if err := m.f.RemoveRow(category, 1); err != nil {
			return fmt.Errorf("failed to clear sheet %q: %w", category, err)
		}
	}
	return nil
}

func (m *SheetMaterializer) boldHeader(category string, columns int) error {
	if columns == 0 {
		return nil
	}
	styleID, err := m.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	endCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := m.f.SetCellStyle(category, "A1", endCol+"1", styleID); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	return nil
}

// autoSizeColumns approximates auto-fit by sizing each column to its longest
// cell value, capped to keep very long answers readable
func (m *SheetMaterializer) autoSizeColumns(category string, headers []string, rows []table.Row) error {
	const maxWidth = 80
	for col := range headers {
		width := len([]rune(headers[col]))
		for _, row := range rows {
			if l := len([]rune(row.Get(col))); l > width {
				width = l
			}
		}
		width += 2
		if width > maxWidth {
			width = maxWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := m.f.SetColWidth(category, name, name, float64(width)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}

func rowToInterface(row []string) *[]interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &cells
}
