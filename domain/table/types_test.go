package table

import "testing"

func TestNewHeaderIndex_TrimsAndKeepsFirst(t *testing.T) {
	ix := NewHeaderIndex([]string{" Publicable ", "Respuesta", "Respuesta", ""})

	if i, ok := ix.Lookup("Publicable"); !ok || i != 0 {
		t.Errorf("Publicable: got (%d, %v)", i, ok)
	}
	if i, ok := ix.Lookup("Respuesta"); !ok || i != 1 {
		t.Errorf("duplicate header should keep first position, got (%d, %v)", i, ok)
	}
	if _, ok := ix.Lookup("Inexistente"); ok {
		t.Error("lookup of unknown column should fail")
	}
}

func TestRow_CloneIsIndependent(t *testing.T) {
	src := Row{"a", "b"}
	c := src.Clone()
	c.Set(1, "x")
	if src[1] != "b" {
		t.Errorf("clone mutation leaked into source: %v", src)
	}
}

func TestRow_GetSetRaggedRows(t *testing.T) {
	r := Row{"a"}
	if got := r.Get(3); got != "" {
		t.Errorf("out-of-range get should be empty, got %q", got)
	}
	r.Set(2, "c")
	if len(r) != 3 || r[2] != "c" {
		t.Errorf("set should grow the row: %v", r)
	}
}

func TestTable_IsEmpty(t *testing.T) {
	var nilTable *Table
	if !nilTable.IsEmpty() {
		t.Error("nil table should be empty")
	}
	if (&Table{Headers: []string{"a"}}).IsEmpty() != true {
		t.Error("table without data rows should be empty")
	}
	if (&Table{Headers: []string{"a"}, Rows: []Row{{"x"}}}).IsEmpty() {
		t.Error("table with rows should not be empty")
	}
}
