package ports

import (
	"context"

	"faqreport/domain/core"
	"faqreport/domain/run"
)

// RunRepository persists run manifests
type RunRepository interface {
	Save(ctx context.Context, m *run.Manifest) error
	GetByID(ctx context.Context, id core.RunID) (*run.Manifest, error)
	List(ctx context.Context, limit int) ([]*run.Manifest, error)
}
