package postgres

import (
	"reflect"
	"testing"
)

func TestTableIdent(t *testing.T) {
	cases := map[string]string{
		"FAQ_Ingresantes":       "faq_ingresantes",
		"  FAQ Sedes  ":         "faq_sedes",
		"Categoría-2024":        "categoría_2024",
		"":                      "category",
		`inject"; DROP TABLE x`: "inject___drop_table_x",
	}
	for in, want := range cases {
		if got := tableIdent(in); got != want {
			t.Errorf("tableIdent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColumnIdents_UniqueAndQuoted(t *testing.T) {
	got := columnIdents([]string{"Respuesta", "Respuesta", "", "Etiqueta Original"})
	want := []string{`"respuesta"`, `"respuesta_2"`, `"col_3"`, `"etiqueta_original"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("columnIdents mismatch:\n got %v\nwant %v", got, want)
	}
}
