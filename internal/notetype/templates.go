package notetype

import (
	"github.com/deckhand-cli/deckhand/internal/template"
)

// TemplateConfig holds a template's format strings and per-template settings.
type TemplateConfig struct {
	QuestionFormat string `json:"qfmt"`
	AnswerFormat   string `json:"afmt"`
	// Browser overrides; empty means fall back to the main formats.
	BrowserQuestionFormat string `json:"bqfmt"`
	BrowserAnswerFormat   string `json:"bafmt"`
	// TargetDeckID overrides the notetype's target deck when non-zero.
	TargetDeckID int64 `json:"did"`
}

// CardTemplate is a named question/answer format pair. Ord is the template's
// position in the previously persisted schema, nil for new templates.
type CardTemplate struct {
	Ord    *uint32
	Name   string
	Config TemplateConfig
}

// NewTemplate returns a template with the given formats.
func NewTemplate(name, questionFormat, answerFormat string) CardTemplate {
	return CardTemplate{
		Name: name,
		Config: TemplateConfig{
			QuestionFormat: questionFormat,
			AnswerFormat:   answerFormat,
		},
	}
}

// fixName sanitizes the template name; fails if nothing remains.
func (t *CardTemplate) fixName() error {
	name := fixName(t.Name)
	if name == "" {
		return invalidInput("empty template name")
	}
	t.Name = name
	return nil
}

// parsedQuestion returns the parsed question format, or nil if it fails to
// parse.
func (t *CardTemplate) parsedQuestion() *template.ParsedTemplate {
	parsed, err := template.Parse(t.Config.QuestionFormat)
	if err != nil {
		return nil
	}
	return parsed
}

// parsedAnswer returns the parsed answer format, or nil if it fails to parse.
func (t *CardTemplate) parsedAnswer() *template.ParsedTemplate {
	parsed, err := template.Parse(t.Config.AnswerFormat)
	if err != nil {
		return nil
	}
	return parsed
}
