package notetype

// repositionSortIdx adjusts the configured sort field index after fields have
// been reordered. The stored index refers to the previously persisted layout;
// if a field still carries that prior ordinal, the index follows it to its
// new position. If the field was deleted, the index is clamped into bounds.
func (nt *Notetype) repositionSortIdx() {
	for idx, f := range nt.Fields {
		if f.Ord != nil && *f.Ord == nt.Config.SortFieldIdx {
			nt.Config.SortFieldIdx = uint32(idx)
			return
		}
	}
	if max := uint32(len(nt.Fields) - 1); nt.Config.SortFieldIdx > max {
		nt.Config.SortFieldIdx = max
	}
}

// renamedAndRemovedFields compares this schema against the previously
// persisted one, producing a map from old field name to the new name (renamed)
// or nil (removed). Only fields carrying a prior ordinal participate; fields
// without one are new and never trigger remapping.
func (nt *Notetype) renamedAndRemovedFields(prior *Notetype) map[string]*string {
	retainedOrds := make(map[uint32]bool)
	changes := make(map[string]*string)

	for _, f := range nt.Fields {
		if f.Ord == nil {
			continue
		}
		retainedOrds[*f.Ord] = true
		if int(*f.Ord) < len(prior.Fields) {
			priorField := prior.Fields[*f.Ord]
			if priorField.Name != f.Name {
				newName := f.Name
				changes[priorField.Name] = &newName
			}
		}
	}
	for idx, f := range prior.Fields {
		if !retainedOrds[uint32(idx)] {
			changes[f.Name] = nil
		}
	}
	return changes
}

// updateTemplatesForRenamedAndRemovedFields rewrites template source to
// reflect field renames and deletions. Templates that failed to parse are
// left untouched; their stale references cannot be fixed mechanically.
func (nt *Notetype) updateTemplatesForRenamedAndRemovedFields(changes map[string]*string, parsed []parsedFormats) {
	for idx, formats := range parsed {
		if formats.question != nil {
			updated := formats.question.RenameAndRemoveFields(changes)
			nt.Templates[idx].Config.QuestionFormat = updated.String()
		}
		if formats.answer != nil {
			updated := formats.answer.RenameAndRemoveFields(changes)
			nt.Templates[idx].Config.AnswerFormat = updated.String()
		}
	}
}
