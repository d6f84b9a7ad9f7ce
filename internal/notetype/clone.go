package notetype

// Clone returns a deep copy, safe to mutate independently of the original.
// Callers editing a cached snapshot must clone it first.
func (nt *Notetype) Clone() *Notetype {
	out := *nt

	out.Fields = make([]Field, len(nt.Fields))
	for i, f := range nt.Fields {
		out.Fields[i] = f
		if f.Ord != nil {
			out.Fields[i].Ord = OrdRef(*f.Ord)
		}
	}

	out.Templates = make([]CardTemplate, len(nt.Templates))
	for i, t := range nt.Templates {
		out.Templates[i] = t
		if t.Ord != nil {
			out.Templates[i].Ord = OrdRef(*t.Ord)
		}
	}

	out.Config.Requirements = make([]Requirement, len(nt.Config.Requirements))
	for i, req := range nt.Config.Requirements {
		out.Config.Requirements[i] = req
		out.Config.Requirements[i].FieldOrds = append([]uint32(nil), req.FieldOrds...)
	}

	return &out
}
