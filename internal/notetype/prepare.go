package notetype

import "strings"

// DefaultDeckID is assigned when a new notetype has no target deck.
const DefaultDeckID = 1

// PrepareForAdding validates and repairs the notetype before its first save.
func (nt *Notetype) PrepareForAdding() error {
	if nt.Config.TargetDeckID == 0 {
		nt.Config.TargetDeckID = DefaultDeckID
	}
	return nt.PrepareForUpdate(nil)
}

// PrepareForUpdate validates and repairs the notetype in place before it is
// persisted. prior is the previously persisted version of this notetype, used
// only to detect field renames and removals; it is nil on first save.
//
// On failure the notetype must not be persisted. Name collisions are repaired
// silently; structural problems are reported as InvalidInputError or
// TemplateSaveError.
func (nt *Notetype) PrepareForUpdate(prior *Notetype) error {
	if len(nt.Fields) == 0 {
		return invalidInput("at least one field required")
	}
	if len(nt.Templates) == 0 {
		return invalidInput("at least one template required")
	}
	nt.Name = strings.ReplaceAll(nt.Name, `"`, "")
	if nt.Name == "" {
		return invalidInput("empty notetype name")
	}
	nt.normalizeNames()
	if err := nt.fixFieldNames(); err != nil {
		return err
	}
	if err := nt.fixTemplateNames(); err != nil {
		return err
	}
	nt.ensureNamesUnique()
	nt.repositionSortIdx()

	parsed := nt.parsedTemplates()
	for idx, formats := range parsed {
		if formats.question == nil || formats.answer == nil {
			return TemplateSaveError{Notetype: nt.Name, Ordinal: idx}
		}
	}
	reqs := nt.updatedRequirements(parsed)

	if prior != nil {
		// Propagation reuses the pre-rewrite parse results, the same ones
		// the requirements were derived from.
		changes := nt.renamedAndRemovedFields(prior)
		if len(changes) > 0 {
			nt.updateTemplatesForRenamedAndRemovedFields(changes, parsed)
		}
	}
	nt.Config.Requirements = reqs

	return nil
}
