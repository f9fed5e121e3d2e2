package main

import (
	"context"
	"log"

	"faqreport/adapters/docs"
	"faqreport/adapters/excel"
	"faqreport/adapters/memory"
	"faqreport/adapters/postgres"
	"faqreport/app"
	"faqreport/domain/classify"
	"faqreport/internal/config"
	"faqreport/ports"
	"faqreport/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	doc := classify.DefaultDocument()
	if cfg.Source.RulesFile != "" {
		doc, err = classify.LoadDocument(cfg.Source.RulesFile)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
	}

	reader := excel.NewDataReader(cfg.Source.File)

	sheets, err := excel.NewSheetMaterializer(cfg.Source.OutputFile)
	if err != nil {
		log.Fatalf("Failed to open destination workbook: %v", err)
	}
	defer func() {
		if err := sheets.Close(); err != nil {
			log.Printf("Failed to save destination workbook: %v", err)
		}
	}()

	materializers := []ports.TableMaterializer{sheets}
	runs := memory.NewRunRepository()

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		ctx := context.Background()
		pg := postgres.NewTableMaterializer(db, cfg.Database.Schema)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		if err := postgres.EnsureTable(ctx, db); err != nil {
			log.Fatalf("Failed to prepare run table: %v", err)
		}
		materializers = append(materializers, pg)
		runs = postgres.NewRunRepository(db)
	}

	// The server resolves the export folder from configuration; there is
	// no interactive prompt here
	var exporter ports.DocumentExporter
	if !cfg.Export.Skip {
		exporter = docs.NewExporter(docs.ResolveDir(cfg.Export.Dir))
	}

	service, err := app.NewReportService(app.Params{
		Reader:        reader,
		Materializers: materializers,
		Exporter:      exporter,
		Runs:          runs,
		Options:       doc.Options(),
		SourceSheet:   cfg.Source.Sheet,
		Cleanup:       cfg.Source.CleanupPolicy,
	})
	if err != nil {
		log.Fatalf("Failed to create report service: %v", err)
	}

	application := ui.NewApp(service, runs)
	log.Printf("Starting faqreport server on http://localhost:%s", cfg.Server.Port)
	log.Fatal(application.Start(ui.Config{Port: cfg.Server.Port}))
}
