package docs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"faqreport/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// DefaultRoot is the fallback destination when no folder is configured or
// the configured one cannot be used.
const DefaultRoot = "reportes"

// ResolveDir resolves the destination folder once per run. A blank or
// unusable folder falls back to the default root; the run continues either
// way.
func ResolveDir(candidate string) string {
	dir := strings.TrimSpace(candidate)
	if dir == "" {
		log.Printf("[Exporter] No destination folder given, using default root %q", DefaultRoot)
		return DefaultRoot
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[Exporter] Destination folder %q unusable (%v), using default root %q", dir, err, DefaultRoot)
		return DefaultRoot
	}
	return dir
}

// Exporter renders category documents as markdown files with a companion
// HTML rendering, named "Reporte - <category>".
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir (created on demand)
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = DefaultRoot
	}
	return &Exporter{dir: dir}
}

// Export writes the document and returns the markdown file path
func (e *Exporter) Export(ctx context.Context, doc ports.Document) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination folder %s: %w", e.dir, err)
	}

	md := renderMarkdown(doc)
	base := filepath.Join(e.dir, fileName(doc.Title))

	mdPath := base + ".md"
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", mdPath, err)
	}

	htmlPath := base + ".html"
	if err := os.WriteFile(htmlPath, renderHTML(doc.Title, md), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", htmlPath, err)
	}

	log.Printf("[Exporter] Document written: %s (+ HTML)", mdPath)
	return mdPath, nil
}

// renderMarkdown builds the document body: the category as a top-level
// heading plus a single table mirroring the sheet's header and rows
func renderMarkdown(doc ports.Document) string {
	var b strings.Builder
	b.WriteString("# " + doc.Category + "\n\n")

	cells := make([]string, len(doc.Headers))
	for i, h := range doc.Headers {
		cells[i] = escapeCell(h)
	}
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")

	seps := make([]string, len(doc.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	for _, row := range doc.Rows {
		cells := make([]string, len(doc.Headers))
		for i := range doc.Headers {
			cells[i] = escapeCell(row.Get(i))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// renderHTML renders the markdown body into a complete HTML page
func renderHTML(title, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

// escapeCell keeps cell content from breaking the table layout
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", "\\|")
}

// fileName strips path separators from the document title
func fileName(title string) string {
	title = strings.ReplaceAll(title, "/", "-")
	return strings.ReplaceAll(title, string(os.PathSeparator), "-")
}
