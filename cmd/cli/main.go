package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"faqreport/adapters/docs"
	"faqreport/adapters/excel"
	"faqreport/adapters/memory"
	"faqreport/adapters/postgres"
	"faqreport/app"
	"faqreport/domain/classify"
	"faqreport/internal/config"
	"faqreport/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "faqreport",
		Short: "Classify FAQ rows into category tables and report documents",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newRulesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		source     string
		sheet      string
		output     string
		rulesFile  string
		folder     string
		cleanup    string
		skipExport bool
		noInput    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: classify, materialize tables, export documents",
		Long: `Read the source table, assign each publishable row to its categories by
keyword matching on the tag column, write one destination table per non-empty
category and export each produced category as a "Reporte - <category>"
document (markdown + HTML).

Without --folder the destination folder is asked for interactively; a blank
answer uses the default root, and cancelling the prompt skips only the
document export stage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlag(cmd, "source", &cfg.Source.File, source)
			applyFlag(cmd, "sheet", &cfg.Source.Sheet, sheet)
			applyFlag(cmd, "output", &cfg.Source.OutputFile, output)
			applyFlag(cmd, "rules", &cfg.Source.RulesFile, rulesFile)
			if cmd.Flags().Changed("cleanup") {
				policy, err := ports.ParseCleanupPolicy(cleanup)
				if err != nil {
					return err
				}
				cfg.Source.CleanupPolicy = policy
			}
			if cmd.Flags().Changed("skip-export") {
				cfg.Export.Skip = skipExport
			}
			if cfg.Source.OutputFile == "" {
				cfg.Source.OutputFile = cfg.Source.File
			}

			doc, err := loadRules(cfg.Source.RulesFile)
			if err != nil {
				return err
			}

			exporter := buildExporter(cmd, cfg, folder, noInput)
			return runPipeline(cmd.Context(), cfg, doc, exporter)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source workbook or CSV file (default $SOURCE_FILE or faq.xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Source sheet name (default: first sheet)")
	cmd.Flags().StringVar(&output, "output", "", "Destination workbook for category sheets (default: the source file)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "JSON rules file (default: built-in rules)")
	cmd.Flags().StringVar(&folder, "folder", "", "Destination folder for report documents")
	cmd.Flags().StringVar(&cleanup, "cleanup", "clear", "Stale category table policy: clear or drop")
	cmd.Flags().BoolVar(&skipExport, "skip-export", false, "Skip the document export stage")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; use configured folder or the default root")

	return cmd
}

func newRulesCmd() *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective classification rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if rulesFile == "" {
				rulesFile = os.Getenv("RULES_FILE")
			}
			doc, err := loadRules(rulesFile)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "JSON rules file (default: built-in rules)")
	return cmd
}

func applyFlag(cmd *cobra.Command, name string, dst *string, value string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

func loadRules(path string) (*classify.Document, error) {
	if path == "" {
		return classify.DefaultDocument(), nil
	}
	return classify.LoadDocument(path)
}

// buildExporter resolves the document destination once, before the run. The
// folder comes from the --folder flag, or a single interactive prompt; a
// cancelled prompt returns nil, which skips only the export stage.
func buildExporter(cmd *cobra.Command, cfg *config.Config, folder string, noInput bool) ports.DocumentExporter {
	if cfg.Export.Skip {
		return nil
	}

	candidate := cfg.Export.Dir
	switch {
	case cmd.Flags().Changed("folder"):
		candidate = folder
	case noInput || candidate != "":
		// configured value wins, no prompt
	default:
		answer, ok := promptFolder(cmd.InOrStdin())
		if !ok {
			log.Printf("[CLI] Folder prompt cancelled, skipping document export")
			return nil
		}
		candidate = answer
	}

	return docs.NewExporter(docs.ResolveDir(candidate))
}

// promptFolder asks once for an optional destination folder. ok is false
// when the prompt is cancelled (EOF).
func promptFolder(in io.Reader) (string, bool) {
	fmt.Fprint(os.Stderr, "Destination folder for report documents (blank for default): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false
	}
	if err == io.EOF && strings.TrimSpace(answer) == "" {
		return "", false
	}
	return strings.TrimSpace(answer), true
}

func runPipeline(ctx context.Context, cfg *config.Config, doc *classify.Document, exporter ports.DocumentExporter) error {
	reader := excel.NewDataReader(cfg.Source.File)

	sheets, err := excel.NewSheetMaterializer(cfg.Source.OutputFile)
	if err != nil {
		return err
	}
	materializers := []ports.TableMaterializer{sheets}
	runs := memory.NewRunRepository()

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		pg := postgres.NewTableMaterializer(db, cfg.Database.Schema)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := postgres.EnsureTable(ctx, db); err != nil {
			return err
		}
		materializers = append(materializers, pg)
		runs = postgres.NewRunRepository(db)
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
		return err
	}

	manifest, runErr := service.Run(ctx)
	if closeErr := sheets.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println(manifest.SummaryLine())
	for _, p := range manifest.Produced {
		fmt.Printf("  %s: %d rows\n", p.Category, p.Rows)
	}
	for _, d := range manifest.Documents {
		fmt.Printf("  document: %s\n", d)
	}
	return nil
}
