package classify

import (
	"faqreport/domain/core"
	"faqreport/domain/table"
)

// Columns names the five source columns the classifier depends on.
// All five must be present in the header row for a run to proceed.
type Columns struct {
	Publishable   string `json:"publishable"`
	Answer        string `json:"answer"`
	UpdatedAnswer string `json:"updated_answer"`
	OriginalTag   string `json:"original_tag"`
	ProposedTag   string `json:"proposed_tag"`
}

// DefaultColumns returns the column names used by the FAQ source sheet
func DefaultColumns() Columns {
	return Columns{
		Publishable:   "Publicable",
		Answer:        "Respuesta",
		UpdatedAnswer: "Respuesta Actualizada",
		OriginalTag:   "Etiqueta Original",
		ProposedTag:   "Etiqueta Propuesta",
	}
}

// Required lists the column names whose presence is mandatory
func (c Columns) Required() []string {
	return []string{c.Publishable, c.Answer, c.UpdatedAnswer, c.OriginalTag, c.ProposedTag}
}

// columnPositions resolves all required columns against a header index.
// A missing column is fatal and aborts the whole run.
type columnPositions struct {
	publishable   int
	answer        int
	updatedAnswer int
	originalTag   int
	proposedTag   int
}

func (c Columns) resolve(ix table.HeaderIndex) (columnPositions, error) {
	var pos columnPositions
	targets := []struct {
		name string
		dst  *int
	}{
		{c.Publishable, &pos.publishable},
		{c.Answer, &pos.answer},
		{c.UpdatedAnswer, &pos.updatedAnswer},
		{c.OriginalTag, &pos.originalTag},
		{c.ProposedTag, &pos.proposedTag},
	}
	for _, t := range targets {
		i, ok := ix.Lookup(t.name)
		if !ok {
			return pos, core.NewMissingColumnError(t.name)
		}
		*t.dst = i
	}
	return pos, nil
}
