package run

import (
	"fmt"

	"faqreport/domain/core"
)

// CategoryCount records how many rows a produced category received
type CategoryCount struct {
	Category string `json:"category"`
	Rows     int    `json:"rows"`
}

// Stats holds descriptive statistics for one run, computed by the summary
// stage from the classification result.
type Stats struct {
	TagsPerRowMean      float64 `json:"tags_per_row_mean"`
	TagsPerRowMedian    float64 `json:"tags_per_row_median"`
	TagsPerRowP90       float64 `json:"tags_per_row_p90"`
	RowsPerCategoryMean float64 `json:"rows_per_category_mean"`
	RowsPerCategoryMax  int     `json:"rows_per_category_max"`
	// MatchRate is the share of surviving rows that landed in at least
	// one category.
	MatchRate float64 `json:"match_rate"`
}

// Manifest is the audit record for one pipeline run: what was read, what was
// excluded, which category tables were produced and which documents were
// exported.
type Manifest struct {
	RunID      core.RunID     `json:"run_id"`
	Source     string         `json:"source"`
	StartedAt  core.Timestamp `json:"started_at"`
	FinishedAt core.Timestamp `json:"finished_at"`

	RowsRead               int `json:"rows_read"`
	ExcludedNotPublishable int `json:"excluded_not_publishable"`
	ExcludedByTagValue     int `json:"excluded_by_tag_value"`
	ExcludedNoTags         int `json:"excluded_no_tags"`

	Produced  []CategoryCount `json:"produced"`
	Documents []string        `json:"documents"`
	Stats     Stats           `json:"stats"`
}

// NewManifest starts the audit record for a run
func NewManifest(source string) *Manifest {
	return &Manifest{
		RunID:     core.RunID(core.NewID()),
		Source:    source,
		StartedAt: core.Now(),
	}
}

// Finish stamps the completion time
func (m *Manifest) Finish() {
	m.FinishedAt = core.Now()
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("manifest", "run_id cannot be empty")
	}
	if m.Source == "" {
		return core.NewValidationError("manifest", "source cannot be empty")
	}
	return nil
}

// SummaryLine renders the user-visible closing message for a run
func (m *Manifest) SummaryLine() string {
	if len(m.Produced) == 0 {
		return "No category tables were produced"
	}
	return fmt.Sprintf("Produced %d category tables and %d documents", len(m.Produced), len(m.Documents))
}
