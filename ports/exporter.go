package ports

import (
	"context"

	"faqreport/domain/table"
)

// Document is one category report ready to be rendered: a heading plus the
// full header+rows table of the category.
type Document struct {
	Title    string
	Category string
	Headers  []string
	Rows     []table.Row
}

// DocumentExporter renders a category document into the destination location
// and returns the path (or identifier) of the persisted document.
type DocumentExporter interface {
	Export(ctx context.Context, doc Document) (string, error)
}
