package notetype

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// uniquenessMarker is appended to a colliding name until it is unique.
const uniquenessMarker = "+"

// ensureNamesUnique makes template names, then field names, pairwise unique
// under case-insensitive comparison. Collection order matters: earlier items
// keep their name, later colliding items grow a marker suffix.
func (nt *Notetype) ensureNamesUnique() {
	seen := make(map[string]bool)
	for i := range nt.Templates {
		for seen[caseKey(nt.Templates[i].Name)] {
			nt.Templates[i].Name += uniquenessMarker
		}
		seen[caseKey(nt.Templates[i].Name)] = true
	}
	clear(seen)
	for i := range nt.Fields {
		for seen[caseKey(nt.Fields[i].Name)] {
			nt.Fields[i].Name += uniquenessMarker
		}
		seen[caseKey(nt.Fields[i].Name)] = true
	}
}

// caseKey folds a name for case-insensitive comparison.
func caseKey(name string) string {
	return strings.ToLower(name)
}

// normalizeNames puts the notetype name and every field and template name
// into Unicode NFC form.
func (nt *Notetype) normalizeNames() {
	nt.Name = norm.NFC.String(nt.Name)
	for i := range nt.Fields {
		nt.Fields[i].Name = norm.NFC.String(nt.Fields[i].Name)
	}
	for i := range nt.Templates {
		nt.Templates[i].Name = norm.NFC.String(nt.Templates[i].Name)
	}
}

func (nt *Notetype) fixFieldNames() error {
	for i := range nt.Fields {
		if err := nt.Fields[i].fixName(); err != nil {
			return err
		}
	}
	return nil
}

func (nt *Notetype) fixTemplateNames() error {
	for i := range nt.Templates {
		if err := nt.Templates[i].fixName(); err != nil {
			return err
		}
	}
	return nil
}
