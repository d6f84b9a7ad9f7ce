// Package notetype defines note type schemas (fields plus card templates) and
// the validation pipeline that keeps templates and derived metadata consistent
// as a schema evolves.
package notetype

import (
	"strings"
	"time"
)

// ID identifies a persisted notetype.
type ID int64

// Kind distinguishes how templates map to cards.
type Kind int

const (
	// KindStandard maps template i to card ordinal i.
	KindStandard Kind = iota
	// KindCloze uses a single template for every card ordinal.
	KindCloze
)

// DefaultCSS is the stylesheet applied to new notetypes.
const DefaultCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: center;
  color: black;
  background-color: white;
}
`

// DefaultLatexHeader and DefaultLatexFooter wrap latex snippets in fields.
const (
	DefaultLatexHeader = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`
	DefaultLatexFooter = `\end{document}`
)

// Config holds notetype-level settings persisted alongside the schema.
type Config struct {
	Kind         Kind          `json:"kind"`
	SortFieldIdx uint32        `json:"sort_field_idx"`
	Requirements []Requirement `json:"reqs"`
	CSS          string        `json:"css"`
	LatexPre     string        `json:"latex_pre"`
	LatexPost    string        `json:"latex_post"`
	TargetDeckID int64         `json:"target_deck_id"`
}

// Notetype is a note type schema: a named field list plus the card templates
// derived from those fields.
type Notetype struct {
	ID        ID
	Name      string
	MTimeSecs int64
	USN       int32
	Fields    []Field
	Templates []CardTemplate
	Config    Config
}

// New returns a notetype with default styling and no fields or templates.
func New(name string) *Notetype {
	return &Notetype{
		Name: name,
		Config: Config{
			CSS:       DefaultCSS,
			LatexPre:  DefaultLatexHeader,
			LatexPost: DefaultLatexFooter,
		},
	}
}

// AddField appends a field with default config.
func (nt *Notetype) AddField(name string) {
	nt.Fields = append(nt.Fields, NewField(name))
}

// AddTemplate appends a template with the given formats.
func (nt *Notetype) AddTemplate(name, questionFormat, answerFormat string) {
	nt.Templates = append(nt.Templates, NewTemplate(name, questionFormat, answerFormat))
}

// GetTemplate returns the template for the given card ordinal. Cloze
// notetypes always return the first and only template.
func (nt *Notetype) GetTemplate(cardOrd uint16) (*CardTemplate, error) {
	idx := int(cardOrd)
	if nt.IsCloze() {
		idx = 0
	}
	if idx >= len(nt.Templates) {
		return nil, ErrNotFound
	}
	return &nt.Templates[idx], nil
}

// GetFieldOrd returns the index of the named field, compared
// case-insensitively. The second return is false if no field matches.
func (nt *Notetype) GetFieldOrd(name string) (uint32, bool) {
	for idx, f := range nt.Fields {
		if strings.EqualFold(f.Name, name) {
			return uint32(idx), true
		}
	}
	return 0, false
}

// IsCloze reports whether this is a cloze notetype.
func (nt *Notetype) IsCloze() bool {
	return nt.Config.Kind == KindCloze
}

// TargetDeckID returns the deck new cards are added to.
func (nt *Notetype) TargetDeckID() int64 {
	return nt.Config.TargetDeckID
}

// SetModified stamps the current time and the given sync sequence number.
func (nt *Notetype) SetModified(usn int32) {
	nt.MTimeSecs = time.Now().Unix()
	nt.USN = usn
}

// fieldMap maps field names to their current ordinals.
func (nt *Notetype) fieldMap() map[string]uint32 {
	m := make(map[string]uint32, len(nt.Fields))
	for idx, f := range nt.Fields {
		m[f.Name] = uint32(idx)
	}
	return m
}
