package notetype

import (
	"github.com/deckhand-cli/deckhand/internal/template"
)

// RequirementKind mirrors template.RequirementKind in the persisted config.
type RequirementKind int

const (
	// RequirementNone means the card can never render.
	RequirementNone RequirementKind = iota
	// RequirementAny means at least one listed field must be non-empty.
	RequirementAny
	// RequirementAll means every listed field must be non-empty.
	RequirementAll
)

// Requirement records which fields must be non-empty for one template to
// produce a card. Card generation consumes these to decide which cards a
// note yields.
type Requirement struct {
	CardOrd   uint32          `json:"card_ord"`
	Kind      RequirementKind `json:"kind"`
	FieldOrds []uint32        `json:"field_ords"`
}

// parsedFormats pairs a template's parsed question and answer; either side is
// nil if it failed to parse.
type parsedFormats struct {
	question *template.ParsedTemplate
	answer   *template.ParsedTemplate
}

// parsedTemplates parses every template's question and answer formats.
func (nt *Notetype) parsedTemplates() []parsedFormats {
	parsed := make([]parsedFormats, len(nt.Templates))
	for idx, t := range nt.Templates {
		parsed[idx] = parsedFormats{
			question: t.parsedQuestion(),
			answer:   t.parsedAnswer(),
		}
	}
	return parsed
}

// updatedRequirements derives one Requirement per template ordinal from the
// parsed question formats. A question that failed to parse produces an
// unsatisfiable card.
func (nt *Notetype) updatedRequirements(parsed []parsedFormats) []Requirement {
	fieldMap := nt.fieldMap()
	reqs := make([]Requirement, len(parsed))
	for ord, formats := range parsed {
		req := Requirement{CardOrd: uint32(ord), Kind: RequirementNone}
		if formats.question != nil {
			fr := formats.question.Requirements(fieldMap)
			switch fr.Kind {
			case template.RequirementAny:
				req.Kind = RequirementAny
			case template.RequirementAll:
				req.Kind = RequirementAll
			}
			req.FieldOrds = fr.Ords
		}
		reqs[ord] = req
	}
	return reqs
}
