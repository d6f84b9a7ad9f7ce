package template

// RenameAndRemoveFields returns a copy of the template with field references
// rewritten. Each map entry maps an old field name to its new name, or to nil
// if the field was removed. Removed replacements are dropped; conditionals on
// a removed field are unwrapped, keeping their (rewritten) children.
func (t *ParsedTemplate) RenameAndRemoveFields(fields map[string]*string) *ParsedTemplate {
	return &ParsedTemplate{nodes: rewriteNodes(t.nodes, fields)}
}

func rewriteNodes(nodes []Node, fields map[string]*string) []Node {
	var out []Node
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			out = append(out, n)
		case Replacement:
			newName, changed := fields[n.Key]
			switch {
			case !changed:
				out = append(out, n)
			case newName == nil:
				// field removed; drop the reference
			default:
				out = append(out, Replacement{Key: *newName, Filters: n.Filters})
			}
		case Conditional:
			children := rewriteNodes(n.Children, fields)
			newName, changed := fields[n.Key]
			switch {
			case !changed:
				out = append(out, Conditional{Key: n.Key, Children: children})
			case newName == nil:
				// field removed; keep the section contents
				out = append(out, children...)
			default:
				out = append(out, Conditional{Key: *newName, Children: children})
			}
		case NegatedConditional:
			children := rewriteNodes(n.Children, fields)
			newName, changed := fields[n.Key]
			switch {
			case !changed:
				out = append(out, NegatedConditional{Key: n.Key, Children: children})
			case newName == nil:
				out = append(out, children...)
			default:
				out = append(out, NegatedConditional{Key: *newName, Children: children})
			}
		}
	}
	return out
}
