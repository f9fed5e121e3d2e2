package memory

import (
	"context"
	"errors"
	"testing"

	"faqreport/domain/core"
	"faqreport/domain/run"
)

func TestRunRepository_SaveAndGet(t *testing.T) {
	repo := NewRunRepository()
	ctx := context.Background()

	m := run.NewManifest("FAQ")
	if err := repo.Save(ctx, m); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, m.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RunID != m.RunID {
		t.Errorf("run ID mismatch: %s vs %s", got.RunID, m.RunID)
	}
}

func TestRunRepository_GetMissing(t *testing.T) {
	repo := NewRunRepository()
	_, err := repo.GetByID(context.Background(), core.RunID("nope"))
	if !errors.Is(err, core.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo := NewRunRepository()
	ctx := context.Background()

	first := run.NewManifest("FAQ")
	second := run.NewManifest("FAQ")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	all, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(all))
	}
	if all[0].RunID != second.RunID {
		t.Errorf("newest manifest should come first")
	}

	limited, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].RunID != second.RunID {
		t.Errorf("limit should keep only the newest manifest")
	}
}

func TestRunRepository_SaveRejectsInvalid(t *testing.T) {
	repo := NewRunRepository()
	if err := repo.Save(context.Background(), run.NewManifest("")); err == nil {
		t.Error("expected validation error for blank source")
	}
}
