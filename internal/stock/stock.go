// Package stock provides the built-in notetypes used to seed a new collection
// and to replace the last notetype when it is removed.
package stock

import (
	"github.com/deckhand-cli/deckhand/internal/notetype"
)

// All returns the built-in notetypes, in catalog order. The first entry is
// the replacement used when a collection would otherwise have no notetype.
func All() []*notetype.Notetype {
	return []*notetype.Notetype{
		basic(),
		basicAndReversed(),
		cloze(),
	}
}

// ByName returns the stock notetype with the given name, or nil.
func ByName(name string) *notetype.Notetype {
	for _, nt := range All() {
		if nt.Name == name {
			return nt
		}
	}
	return nil
}

func basic() *notetype.Notetype {
	nt := notetype.New("Basic")
	nt.AddField("Front")
	nt.AddField("Back")
	nt.AddTemplate("Card 1", "{{Front}}", "{{Front}}<hr id=answer>{{Back}}")
	return nt
}

func basicAndReversed() *notetype.Notetype {
	nt := basic()
	nt.Name = "Basic (and reversed card)"
	nt.AddTemplate("Card 2", "{{Back}}", "{{Back}}<hr id=answer>{{Front}}")
	return nt
}

func cloze() *notetype.Notetype {
	nt := notetype.New("Cloze")
	nt.Config.Kind = notetype.KindCloze
	nt.AddField("Text")
	nt.AddField("Back Extra")
	nt.AddTemplate("Cloze", "{{cloze:Text}}", "{{cloze:Text}}<br>{{Back Extra}}")
	nt.Config.CSS = notetype.DefaultCSS + `
.cloze {
  font-weight: bold;
  color: blue;
}
`
	return nt
}
