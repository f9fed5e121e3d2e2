package ports

import (
	"context"
	"fmt"
	"strings"

	"faqreport/domain/table"
)

// CleanupPolicy decides what happens to a pre-existing destination table
// whose category received zero rows in the current run.
type CleanupPolicy string

const (
	// CleanupClear empties the table but keeps it in place
	CleanupClear CleanupPolicy = "clear"
	// CleanupDrop removes the table entirely
	CleanupDrop CleanupPolicy = "drop"
)

// ParseCleanupPolicy parses a policy name, defaulting to clear
func ParseCleanupPolicy(s string) (CleanupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(CleanupClear):
		return CleanupClear, nil
	case string(CleanupDrop):
		return CleanupDrop, nil
	default:
		return "", fmt.Errorf("unknown cleanup policy %q (want clear or drop)", s)
	}
}

// TableMaterializer writes one category bucket into a destination table named
// after the category, creating the table if absent and clearing it first if
// present. Cleanup handles categories that produced no rows this run.
type TableMaterializer interface {
	Materialize(ctx context.Context, category string, headers []string, rows []table.Row) error
	Cleanup(ctx context.Context, category string, policy CleanupPolicy) error
}
