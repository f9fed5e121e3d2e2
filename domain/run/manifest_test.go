package run

import (
	"strings"
	"testing"
)

func TestNewManifest_Complete(t *testing.T) {
	m := NewManifest("FAQ")
	if err := m.Validate(); err != nil {
		t.Fatalf("fresh manifest should validate: %v", err)
	}
	if m.RunID.String() == "" {
		t.Error("manifest should get a run ID")
	}
	if m.StartedAt.IsZero() {
		t.Error("manifest should get a start time")
	}

	m.Finish()
	if m.FinishedAt.IsZero() {
		t.Error("Finish should stamp the completion time")
	}
}

func TestManifest_ValidateRejectsBlankSource(t *testing.T) {
	m := NewManifest("")
	if err := m.Validate(); err == nil {
		t.Error("expected validation error for blank source")
	}
}

func TestManifest_SummaryLine(t *testing.T) {
	m := NewManifest("FAQ")
	if got := m.SummaryLine(); got != "No category tables were produced" {
		t.Errorf("empty run summary mismatch: %q", got)
	}

	m.Produced = []CategoryCount{
		{Category: "FAQ_Ingresantes", Rows: 3},
		{Category: "FAQ_Sedes", Rows: 1},
	}
	m.Documents = []string{"reportes/Reporte - FAQ_Ingresantes.md"}
	got := m.SummaryLine()
	if !strings.Contains(got, "2 category tables") || !strings.Contains(got, "1 documents") {
		t.Errorf("summary mismatch: %q", got)
	}
}
