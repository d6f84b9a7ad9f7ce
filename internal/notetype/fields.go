package notetype

import (
	"strings"
	"unicode"
)

// FieldConfig holds per-field settings.
type FieldConfig struct {
	Sticky   bool   `json:"sticky"`
	RTL      bool   `json:"rtl"`
	Font     string `json:"font"`
	FontSize uint32 `json:"size"`
}

// Field is a named, ordered slot in a notetype. Ord is the field's position
// in the previously persisted schema; it is nil for newly added fields.
type Field struct {
	Ord    *uint32
	Name   string
	Config FieldConfig
}

// NewField returns a field with default config and no prior ordinal.
func NewField(name string) Field {
	return Field{
		Name: name,
		Config: FieldConfig{
			Font:     "Arial",
			FontSize: 20,
		},
	}
}

// fixName sanitizes the field name, removing characters that would break
// template references or persisted quoting. Fails if nothing remains.
func (f *Field) fixName() error {
	name := fixName(f.Name)
	if name == "" {
		return invalidInput("empty field name")
	}
	f.Name = name
	return nil
}

// fixName trims surrounding whitespace and strips control characters and the
// characters `:"{}` from a field or template name.
func fixName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '"', '{', '}':
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}

// OrdRef returns a pointer to ord, for assigning prior ordinals.
func OrdRef(ord uint32) *uint32 {
	return &ord
}
