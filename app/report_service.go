package app

import (
	"context"
	"fmt"
	"log"

	"faqreport/domain/classify"
	"faqreport/domain/core"
	"faqreport/domain/run"
	apperrors "faqreport/internal/errors"
	"faqreport/internal/summary"
	"faqreport/ports"

	"golang.org/x/sync/semaphore"
)

// Params wires the collaborators of a ReportService
type Params struct {
	Reader ports.TableReader
	// Materializers all receive every bucket; typically the sheet
	// materializer plus, when configured, the Postgres one
	Materializers []ports.TableMaterializer
	// Exporter may be nil, which skips the document export stage
	Exporter ports.DocumentExporter
	Runs     ports.RunRepository

	Options classify.Options
	// SourceSheet is the source table name passed to the reader
	SourceSheet string
	Cleanup     ports.CleanupPolicy
}

// ReportService runs the full pipeline: read the source table, classify its
// rows into category buckets, materialize each non-empty bucket as a table
// and export each produced category as a report document.
//
// At most one run may be active at a time; concurrent triggers get
// core.ErrRunInProgress instead of queueing.
type ReportService struct {
	reader        ports.TableReader
	materializers []ports.TableMaterializer
	exporter      ports.DocumentExporter
	runs          ports.RunRepository

	opts        classify.Options
	sourceSheet string
	cleanup     ports.CleanupPolicy

	active *semaphore.Weighted
}

// NewReportService creates a report service from its collaborators
func NewReportService(p Params) (*ReportService, error) {
	if p.Reader == nil {
		return nil, apperrors.ConfigInvalid("a table reader is required")
	}
	if len(p.Materializers) == 0 {
		return nil, apperrors.ConfigInvalid("at least one table materializer is required")
	}
	if err := p.Options.Rules.Validate(); err != nil {
		return nil, err
	}
	if p.Cleanup == "" {
		p.Cleanup = ports.CleanupClear
	}

	return &ReportService{
		reader:        p.Reader,
		materializers: p.Materializers,
		exporter:      p.Exporter,
		runs:          p.Runs,
		opts:          p.Options,
		sourceSheet:   p.SourceSheet,
		cleanup:       p.Cleanup,
		active:        semaphore.NewWeighted(1),
	}, nil
}

// Run executes one pipeline pass and returns its manifest
func (s *ReportService) Run(ctx context.Context) (*run.Manifest, error) {
	if !s.active.TryAcquire(1) {
		return nil, core.ErrRunInProgress
	}
	defer s.active.Release(1)

	src, err := s.reader.Read(ctx, s.sourceSheet)
	if err != nil {
		return nil, apperrors.SourceError(err)
	}
	if src.IsEmpty() {
		return nil, apperrors.SourceError(core.ErrNoData)
	}

	res, err := classify.Classify(src, s.opts)
	if err != nil {
		return nil, err
	}

	manifest := run.NewManifest(src.Name)
	manifest.RowsRead = res.RowsRead
	manifest.ExcludedNotPublishable = res.ExcludedNotPublishable
	manifest.ExcludedByTagValue = res.ExcludedByTagValue
	manifest.ExcludedNoTags = res.ExcludedNoTags
	manifest.Stats = summary.Compute(res)

	if err := s.materialize(ctx, src.Headers, res, manifest); err != nil {
		return nil, err
	}
	s.export(ctx, src.Headers, res, manifest)

	manifest.Finish()
	if s.runs != nil {
		if err := s.runs.Save(ctx, manifest); err != nil {
			log.Printf("[ReportService] Failed to persist run manifest: %v", err)
		}
	}

	log.Printf("[ReportService] %s", manifest.SummaryLine())
	return manifest, nil
}

// materialize writes every non-empty bucket through all configured
// materializers and applies the cleanup policy to empty categories
func (s *ReportService) materialize(ctx context.Context, headers []string, res *classify.Result, manifest *run.Manifest) error {
	for _, category := range res.Order {
		rows := res.Buckets[category]
		for _, m := range s.materializers {
			if len(rows) > 0 {
				if err := m.Materialize(ctx, category, headers, rows); err != nil {
					return fmt.Errorf("failed to materialize %s: %w", category, err)
				}
			} else if err := m.Cleanup(ctx, category, s.cleanup); err != nil {
				return fmt.Errorf("failed to clean up %s: %w", category, err)
			}
		}
		if len(rows) > 0 {
			manifest.Produced = append(manifest.Produced, run.CategoryCount{Category: category, Rows: len(rows)})
		}
	}
	return nil
}

// export renders one document per produced category. A single document
// failure is logged and skipped; the remaining categories still export.
func (s *ReportService) export(ctx context.Context, headers []string, res *classify.Result, manifest *run.Manifest) {
	if s.exporter == nil {
		log.Printf("[ReportService] Document export skipped")
		return
	}

	for _, category := range res.Produced() {
		doc := ports.Document{
			Title:    "Reporte - " + category,
			Category: category,
			Headers:  headers,
			Rows:     res.Buckets[category],
		}
		path, err := s.exporter.Export(ctx, doc)
		if err != nil {
			log.Printf("[ReportService] %v", apperrors.ExportError(category, err))
			continue
		}
		manifest.Documents = append(manifest.Documents, path)
	}
}
