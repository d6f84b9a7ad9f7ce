// Package template implements the handlebar-style language used by card
// question and answer formats: {{Field}} replacements with optional filter
// prefixes, and {{#Field}}...{{/Field}} / {{^Field}}...{{/Field}} conditional
// sections.
package template

import (
	"fmt"
	"strings"
)

// Node is a parsed template element.
type Node interface {
	isNode()
}

// Text is literal text between handlebars.
type Text string

// Replacement is a {{filter:Field}} substitution.
type Replacement struct {
	Key     string
	Filters []string
}

// Conditional is a {{#Field}}...{{/Field}} section, rendered only when the
// field is non-empty.
type Conditional struct {
	Key      string
	Children []Node
}

// NegatedConditional is a {{^Field}}...{{/Field}} section, rendered only when
// the field is empty.
type NegatedConditional struct {
	Key      string
	Children []Node
}

func (Text) isNode()               {}
func (Replacement) isNode()        {}
func (Conditional) isNode()        {}
func (NegatedConditional) isNode() {}

// ParsedTemplate is a successfully parsed template.
type ParsedTemplate struct {
	nodes []Node
}

// Nodes returns the top-level parsed nodes.
func (t *ParsedTemplate) Nodes() []Node {
	return t.nodes
}

const (
	openTag  = "{{"
	closeTag = "}}"
)

// Parse parses template source. It returns an error for unclosed handlebars,
// empty replacement keys, and unbalanced or mismatched conditional sections.
func Parse(source string) (*ParsedTemplate, error) {
	p := &parser{remaining: source}
	nodes, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	return &ParsedTemplate{nodes: nodes}, nil
}

type parser struct {
	remaining string
}

// parseNodes consumes nodes until the closing tag for openKey is seen, or
// until the end of input for the top level (openKey empty).
func (p *parser) parseNodes(openKey string) ([]Node, error) {
	var nodes []Node
	for {
		start := strings.Index(p.remaining, openTag)
		if start == -1 {
			if openKey != "" {
				return nil, fmt.Errorf("conditional %q is missing a closing {{/%s}}", openKey, openKey)
			}
			if p.remaining != "" {
				nodes = append(nodes, Text(p.remaining))
				p.remaining = ""
			}
			return nodes, nil
		}
		if start > 0 {
			nodes = append(nodes, Text(p.remaining[:start]))
		}
		p.remaining = p.remaining[start+len(openTag):]

		end := strings.Index(p.remaining, closeTag)
		if end == -1 {
			return nil, fmt.Errorf("unclosed handlebar near %q", truncate(openTag+p.remaining))
		}
		tag := strings.TrimSpace(p.remaining[:end])
		p.remaining = p.remaining[end+len(closeTag):]

		switch {
		case strings.HasPrefix(tag, "#"):
			key := strings.TrimSpace(tag[1:])
			children, err := p.parseNodes(key)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Conditional{Key: key, Children: children})
		case strings.HasPrefix(tag, "^"):
			key := strings.TrimSpace(tag[1:])
			children, err := p.parseNodes(key)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, NegatedConditional{Key: key, Children: children})
		case strings.HasPrefix(tag, "/"):
			key := strings.TrimSpace(tag[1:])
			if openKey == "" {
				return nil, fmt.Errorf("closing {{/%s}} has no matching opening tag", key)
			}
			if key != openKey {
				return nil, fmt.Errorf("closing {{/%s}} does not match opening {{#%s}}", key, openKey)
			}
			return nodes, nil
		default:
			rep, err := parseReplacement(tag)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, rep)
		}
	}
}

func parseReplacement(tag string) (Replacement, error) {
	parts := strings.Split(tag, ":")
	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return Replacement{}, fmt.Errorf("replacement %q has an empty field name", openTag+tag+closeTag)
	}
	var filters []string
	for _, f := range parts[:len(parts)-1] {
		filters = append(filters, strings.TrimSpace(f))
	}
	return Replacement{Key: key, Filters: filters}, nil
}

func truncate(s string) string {
	const max = 20
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// String serializes the template back to source text.
func (t *ParsedTemplate) String() string {
	var sb strings.Builder
	writeNodes(&sb, t.nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(string(n))
		case Replacement:
			sb.WriteString(openTag)
			for _, f := range n.Filters {
				sb.WriteString(f)
				sb.WriteString(":")
			}
			sb.WriteString(n.Key)
			sb.WriteString(closeTag)
		case Conditional:
			fmt.Fprintf(sb, "%s#%s%s", openTag, n.Key, closeTag)
			writeNodes(sb, n.Children)
			fmt.Fprintf(sb, "%s/%s%s", openTag, n.Key, closeTag)
		case NegatedConditional:
			fmt.Fprintf(sb, "%s^%s%s", openTag, n.Key, closeTag)
			writeNodes(sb, n.Children)
			fmt.Fprintf(sb, "%s/%s%s", openTag, n.Key, closeTag)
		}
	}
}
