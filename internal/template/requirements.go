package template

import "sort"

// RequirementKind classifies which fields must be non-empty for a template to
// produce output.
type RequirementKind int

const (
	// RequirementNone means the template can never produce output.
	RequirementNone RequirementKind = iota
	// RequirementAny means at least one of the listed fields must be non-empty.
	RequirementAny
	// RequirementAll means every listed field must be non-empty.
	RequirementAll
)

// FieldRequirements is the requirement classification for one template.
type FieldRequirements struct {
	Kind RequirementKind
	// Ords lists the participating field ordinals, sorted ascending.
	Ords []uint32
}

// Requirements classifies the template against the given field-name→ordinal
// map.
//
// A field qualifies for Any if the template produces output when that field
// alone is non-empty. If no single field suffices, the template is All of the
// fields whose removal blanks an otherwise fully-filled render, provided the
// fully-filled render produces output at all; otherwise it is None.
//
// Negated conditionals are treated as producing nothing here: a card should
// not count as satisfiable purely by a field being empty.
func (t *ParsedTemplate) Requirements(fieldMap map[string]uint32) FieldRequirements {
	nonempty := make(map[string]bool, len(fieldMap))

	var anyOrds []uint32
	for name, ord := range fieldMap {
		clear(nonempty)
		nonempty[name] = true
		if t.rendersWithFields(nonempty) {
			anyOrds = append(anyOrds, ord)
		}
	}
	if len(anyOrds) > 0 {
		sortOrds(anyOrds)
		return FieldRequirements{Kind: RequirementAny, Ords: anyOrds}
	}

	clear(nonempty)
	for name := range fieldMap {
		nonempty[name] = true
	}
	if !t.rendersWithFields(nonempty) {
		return FieldRequirements{Kind: RequirementNone}
	}

	var allOrds []uint32
	for name, ord := range fieldMap {
		delete(nonempty, name)
		if !t.rendersWithFields(nonempty) {
			allOrds = append(allOrds, ord)
		}
		nonempty[name] = true
	}
	if len(allOrds) == 0 {
		return FieldRequirements{Kind: RequirementNone}
	}
	sortOrds(allOrds)
	return FieldRequirements{Kind: RequirementAll, Ords: allOrds}
}

// rendersWithFields reports whether the template produces any field content
// when exactly the given fields are non-empty.
func (t *ParsedTemplate) rendersWithFields(nonempty map[string]bool) bool {
	return !nodesEmpty(t.nodes, nonempty)
}

func nodesEmpty(nodes []Node, nonempty map[string]bool) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			// literal text does not satisfy a card on its own
		case Replacement:
			if nonempty[n.Key] {
				return false
			}
		case Conditional:
			if nonempty[n.Key] && !nodesEmpty(n.Children, nonempty) {
				return false
			}
		case NegatedConditional:
			// ignored; see Requirements
		}
	}
	return true
}

func sortOrds(ords []uint32) {
	sort.Slice(ords, func(i, j int) bool { return ords[i] < ords[j] })
}
