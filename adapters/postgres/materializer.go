package postgres

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"faqreport/domain/table"
	"faqreport/ports"

	"github.com/jmoiron/sqlx"
)

// TableMaterializer writes category buckets into Postgres tables, one table
// per category under a dedicated schema. All cells are stored as TEXT; the
// destination mirrors the sheet, it is not a typed model.
type TableMaterializer struct {
	db     *sqlx.DB
	schema string
}

// NewTableMaterializer creates a Postgres-backed materializer
func NewTableMaterializer(db *sqlx.DB, schema string) *TableMaterializer {
	if schema == "" {
		schema = "faqreport"
	}
	return &TableMaterializer{db: db, schema: schema}
}

// EnsureSchema creates the destination schema if it does not exist
func (m *TableMaterializer) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, quoteIdent(m.schema))); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", m.schema, err)
	}
	return nil
}

// Materialize recreates the category table and inserts the bucket rows in a
// single transaction
func (m *TableMaterializer) Materialize(ctx context.Context, category string, headers []string, rows []table.Row) error {
	target := m.qualified(category)
	columns := columnIdents(headers)

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s TEXT", col)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Drop and recreate so column layout always follows the current headers
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, target)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", target, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, target, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", target, err)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		target, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	for _, row := range rows {
		args := make([]interface{}, len(columns))
		for i := range columns {
			args[i] = row.Get(i)
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", target, err)
	}

	log.Printf("[PGMaterializer] Table %s written (%d rows)", target, len(rows))
	return nil
}

// Cleanup truncates or drops the category table per the configured policy
func (m *TableMaterializer) Cleanup(ctx context.Context, category string, policy ports.CleanupPolicy) error {
	target := m.qualified(category)

	var query string
	switch policy {
	case ports.CleanupDrop:
		query = fmt.Sprintf(`DROP TABLE IF EXISTS %s`, target)
	default:
		exists, err := m.tableExists(ctx, category)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		query = fmt.Sprintf(`TRUNCATE TABLE %s`, target)
	}

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clean up %s: %w", target, err)
	}
	log.Printf("[PGMaterializer] Table %s cleaned up (%s)", target, policy)
	return nil
}

func (m *TableMaterializer) tableExists(ctx context.Context, category string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
	var exists bool
	if err := m.db.GetContext(ctx, &exists, query, m.schema, tableIdent(category)); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

func (m *TableMaterializer) qualified(category string) string {
	return quoteIdent(m.schema) + "." + quoteIdent(tableIdent(category))
}

// tableIdent converts a category name into a safe lower-case identifier
func tableIdent(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "category"
	}
	return b.String()
}

// columnIdents derives unique, quoted column identifiers from the header row
func columnIdents(headers []string) []string {
	columns := make([]string, len(headers))
	used := make(map[string]int, len(headers))
	for i, h := range headers {
		base := tableIdent(h)
		if strings.TrimSpace(h) == "" {
			base = fmt.Sprintf("col_%d", i+1)
		}
		ident := base
		if n := used[base]; n > 0 {
			ident = fmt.Sprintf("%s_%d", base, n+1)
		}
		used[base]++
		columns[i] = quoteIdent(ident)
	}
	return columns
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
