package classify

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRuleSet_Validate(t *testing.T) {
	cases := []struct {
		name    string
		rules   RuleSet
		wantErr bool
	}{
		{"valid", DefaultRules(), false},
		{"empty set", RuleSet{}, true},
		{"empty category", RuleSet{{Category: " ", Keywords: []string{"x"}}}, true},
		{"no keywords", RuleSet{{Category: "FAQ_X", Keywords: nil}}, true},
		{"blank keyword", RuleSet{{Category: "FAQ_X", Keywords: []string{" "}}}, true},
		{"duplicate category", RuleSet{
			{Category: "FAQ_X", Keywords: []string{"a"}},
			{Category: "FAQ_X", Keywords: []string{"b"}},
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDocument_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	raw := `{
		"excluded_tag": "Obsoleta",
		"rules": [
			{"category": "FAQ_Becas", "keywords": ["Beca", "Arancel"]}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ExcludedTag != "Obsoleta" {
		t.Errorf("excluded tag not taken from file: %q", doc.ExcludedTag)
	}
	if doc.Separator != ";" {
		t.Errorf("separator should default to ';', got %q", doc.Separator)
	}
	if doc.Columns != DefaultColumns() {
		t.Errorf("columns should default, got %+v", doc.Columns)
	}
	want := RuleSet{{Category: "FAQ_Becas", Keywords: []string{"Beca", "Arancel"}}}
	if !reflect.DeepEqual(doc.Rules, want) {
		t.Errorf("rules mismatch: got %+v", doc.Rules)
	}
}

func TestLoadDocument_RejectsInvalidRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"rules": [{"category": "FAQ_X"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Error("expected validation error for keywordless category")
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing rules file")
	}
}
