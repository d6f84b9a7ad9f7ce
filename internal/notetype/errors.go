package notetype

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a requested card ordinal has no template.
var ErrNotFound = errors.New("not found")

// InvalidInputError indicates user-correctable bad input: empty field or
// template lists, an empty name after sanitization, or a stale write.
type InvalidInputError struct {
	Message string
}

func (e InvalidInputError) Error() string {
	return "invalid input: " + e.Message
}

func invalidInput(format string, args ...any) error {
	return InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// TemplateSaveError indicates a template's question or answer format failed
// to parse. It carries enough identity for the caller to locate the template.
type TemplateSaveError struct {
	Notetype string
	Ordinal  int
}

func (e TemplateSaveError) Error() string {
	return fmt.Sprintf("template %d of notetype %q failed to parse", e.Ordinal, e.Notetype)
}
