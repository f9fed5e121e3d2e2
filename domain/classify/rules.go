package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"faqreport/domain/core"
)

// Rule binds an output category to the keyword substrings that select rows
// for it. Matching is case-insensitive: a row lands in the category when any
// keyword is a substring of any of the row's tags.
type Rule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// RuleSet is an ordered list of rules. Order determines both the order in
// which category tables are produced and the order of the produced list.
type RuleSet []Rule

// Categories returns the category names in rule order
func (rs RuleSet) Categories() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Category
	}
	return names
}

// Validate checks the rule set for empty names, empty keyword lists and
// duplicate categories
func (rs RuleSet) Validate() error {
	if len(rs) == 0 {
		return core.NewValidationError("rules", "at least one rule is required")
	}
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			return core.NewValidationError("rules", "category name cannot be empty")
		}
		if seen[name] {
			return core.NewValidationError("rules", fmt.Sprintf("duplicate category %q", name))
		}
		seen[name] = true
		if len(r.Keywords) == 0 {
			return core.NewValidationError("rules", fmt.Sprintf("category %q has no keywords", name))
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return core.NewValidationError("rules", fmt.Sprintf("category %q has an empty keyword", name))
			}
		}
	}
	return nil
}

// DefaultRules returns the FAQ grouping rules shipped with the tool
func DefaultRules() RuleSet {
	return RuleSet{
		{Category: "FAQ_Ingresantes", Keywords: []string{
			"Ingreso", "Ingresantes", "Inscripción", "Beca", "Requisitos",
		}},
		{Category: "FAQ_Carreras", Keywords: []string{
			"Carrera", "Plan de estudio", "Materia", "Correlativa", "Título",
		}},
		{Category: "FAQ_Sedes", Keywords: []string{
			"Sede", "Edificio", "Dirección",
		}},
		{Category: "FAQ_Preguntas_frecuentes_generales", Keywords: []string{
			"Varios", "General", "Trámite", "Certificado",
		}},
	}
}

// Document is the on-disk JSON form of a complete classification setup:
// column names, tag parsing options and the grouping rules.
type Document struct {
	Columns     Columns `json:"columns"`
	Separator   string  `json:"separator"`
	ExcludedTag string  `json:"excluded_tag"`
	Rules       RuleSet `json:"rules"`
}

// DefaultDocument returns the built-in classification setup
func DefaultDocument() *Document {
	return &Document{
		Columns:     DefaultColumns(),
		Separator:   ";",
		ExcludedTag: "Descartada",
		Rules:       DefaultRules(),
	}
}

// LoadDocument reads a classification setup from a JSON file. Fields left
// empty in the file fall back to the built-in defaults.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	doc := DefaultDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if err := doc.Rules.Validate(); err != nil {
		return nil, err
	}
	if doc.Separator == "" {
		doc.Separator = ";"
	}
	return doc, nil
}

// Options converts the document into classifier options
func (d *Document) Options() Options {
	return Options{
		Columns:     d.Columns,
		Rules:       d.Rules,
		Separator:   d.Separator,
		ExcludedTag: d.ExcludedTag,
	}
}
