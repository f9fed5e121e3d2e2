package classify

import (
	"strings"

	"faqreport/domain/core"
	"faqreport/domain/table"
)

// Options configures a classification pass
type Options struct {
	Columns     Columns
	Rules       RuleSet
	Separator   string
	ExcludedTag string
}

// Result holds the outcome of classifying one source table: the per-category
// buckets plus the exclusion accounting that feeds the run summary.
type Result struct {
	// Order lists category names in rule order; Buckets is keyed by category.
	// A row may appear in several buckets but never twice in the same one.
	Order   []string
	Buckets map[string][]table.Row

	RowsRead               int
	ExcludedNotPublishable int
	ExcludedByTagValue     int
	ExcludedNoTags         int
	Unmatched              int

	// TagsPerRow records the tag count of every row that survived filtering,
	// in source order. Consumed by the summary stage.
	TagsPerRow []int
}

// Produced returns the categories that received at least one row, in rule
// order. This list drives table materialization and document export.
func (r *Result) Produced() []string {
	var produced []string
	for _, cat := range r.Order {
		if len(r.Buckets[cat]) > 0 {
			produced = append(produced, cat)
		}
	}
	return produced
}

// BucketRows returns the number of rows assigned to a category
func (r *Result) BucketRows(category string) int {
	return len(r.Buckets[category])
}

// Classify assigns each data row of the source table to zero or more
// categories. It is a pure function: the input table is never mutated and
// every bucketed row is an independent copy.
//
// Per row, in order:
//  1. publishable == "NO" (trimmed, case-insensitive) excludes the row
//  2. a non-empty updated answer overwrites the answer on the row copy
//  3. a non-empty proposed tag overwrites the original tag on the row copy
//  4. a final tag string equal to the excluded tag (whole string, before
//     splitting, case-insensitive) excludes the row
//  5. the tag string is split, trimmed and lower-cased; no tags left
//     excludes the row
//  6. every category whose keywords match any tag receives the row once
func Classify(t *table.Table, opts Options) (*Result, error) {
	if t == nil || len(t.Headers) == 0 {
		return nil, core.ErrNoData
	}

	ix := table.NewHeaderIndex(t.Headers)
	pos, err := opts.Columns.resolve(ix)
	if err != nil {
		return nil, err
	}

	sep := opts.Separator
	if sep == "" {
		sep = ";"
	}
	excluded := strings.ToLower(strings.TrimSpace(opts.ExcludedTag))

	// Lower-case the keywords once up front
	keywords := make([][]string, len(opts.Rules))
	for i, rule := range opts.Rules {
		keywords[i] = make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[i][j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}

	res := &Result{
		Order:   opts.Rules.Categories(),
		Buckets: make(map[string][]table.Row, len(opts.Rules)),
	}
	// Per-bucket seen-sets keyed by source row index, reset every run
	seen := make([]map[int]bool, len(opts.Rules))
	for i := range seen {
		seen[i] = make(map[int]bool)
	}

	for rowIdx, src := range t.Rows {
		res.RowsRead++

		if strings.ToUpper(strings.TrimSpace(src.Get(pos.publishable))) == "NO" {
			res.ExcludedNotPublishable++
			continue
		}

		row := src.Clone()
		if updated := strings.TrimSpace(row.Get(pos.updatedAnswer)); updated != "" {
			row.Set(pos.answer, updated)
		}
		if proposed := strings.TrimSpace(row.Get(pos.proposedTag)); proposed != "" {
			row.Set(pos.originalTag, proposed)
		}

		// Exclusion check is on the whole tag string, not per-tag:
		// "Ingreso;Sedes" survives even when "Ingreso" alone would not.
		tagString := strings.TrimSpace(row.Get(pos.originalTag))
		if excluded != "" && strings.ToLower(tagString) == excluded {
			res.ExcludedByTagValue++
			continue
		}

		tags := splitTags(tagString, sep)
		if len(tags) == 0 {
			res.ExcludedNoTags++
			continue
		}
		res.TagsPerRow = append(res.TagsPerRow, len(tags))

		matched := false
		for i, rule := range opts.Rules {
			if seen[i][rowIdx] {
				continue
			}
			if matchesAny(tags, keywords[i]) {
				seen[i][rowIdx] = true
				res.Buckets[rule.Category] = append(res.Buckets[rule.Category], row)
				matched = true
			}
		}
		if !matched {
			res.Unmatched++
		}
	}

	return res, nil
}

// splitTags splits the raw tag string on the separator, trimming and
// lower-casing each piece and dropping empty ones
func splitTags(tagString, sep string) []string {
	var tags []string
	for _, piece := range strings.Split(tagString, sep) {
		tag := strings.ToLower(strings.TrimSpace(piece))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// matchesAny reports whether any keyword is a substring of any tag
func matchesAny(tags, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		for _, tag := range tags {
			if strings.Contains(tag, kw) {
				return true
			}
		}
	}
	return false
}
