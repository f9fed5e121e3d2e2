package ports

import (
	"context"

	"faqreport/domain/table"
)

// TableReader loads the source table from its backing store.
// The name identifies the table inside the store (sheet name for
// spreadsheet-backed stores).
type TableReader interface {
	Read(ctx context.Context, name string) (*table.Table, error)
}
