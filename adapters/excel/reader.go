package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"faqreport/domain/core"
	"faqreport/domain/table"

	"github.com/xuri/excelize/v2"
)

// DataReader reads the source table from an Excel or CSV file
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the named sheet (ignored for CSV) into a table. The first row
// becomes the trimmed header sequence; the rest become data rows.
func (r *DataReader) Read(ctx context.Context, name string) (*table.Table, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewSourceNotFoundError(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel(name)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcel(sheet string) (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q", core.ErrSourceNotFound, sheet)
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.buildTable(sheet, rows)
}

func (r *DataReader) readCSV() (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return r.buildTable(name, rows)
}

// buildTable converts raw string rows into a table, trimming headers
func (r *DataReader) buildTable(name string, rows [][]string) (*table.Table, error) {
	if len(rows) < 2 {
		return nil, core.ErrNoData
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := make([]table.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(table.Row, len(raw))
		copy(row, raw)
		dataRows = append(dataRows, row)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &table.Table{Name: name, Headers: headers, Rows: dataRows}, nil
}
