package notetype

import (
	"errors"
	"testing"
)

// basicNotetype returns a two-field, one-template notetype ready for the
// validation pipeline.
func basicNotetype() *Notetype {
	nt := New("Basic")
	nt.AddField("Front")
	nt.AddField("Back")
	nt.AddTemplate("Card 1", "{{Front}}", "{{Front}}<hr>{{Back}}")
	return nt
}

func TestEnsureNamesUnique(t *testing.T) {
	t.Run("case-insensitive collisions repaired", func(t *testing.T) {
		nt := New("Test")
		nt.AddField("Front")
		nt.AddField("front")
		nt.AddField("FRONT")
		nt.AddTemplate("Card", "{{Front}}", "")
		nt.AddTemplate("card", "{{Front}}", "")
		nt.ensureNamesUnique()

		wantFields := []string{"Front", "front+", "FRONT++"}
		for i, want := range wantFields {
			if nt.Fields[i].Name != want {
				t.Errorf("field %d: got %q, want %q", i, nt.Fields[i].Name, want)
			}
		}
		if nt.Templates[1].Name != "card+" {
			t.Errorf("template 1: got %q, want %q", nt.Templates[1].Name, "card+")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		nt := New("Test")
		nt.AddField("A")
		nt.AddField("a")
		nt.AddTemplate("T", "{{A}}", "")
		nt.ensureNamesUnique()

		before := make([]string, len(nt.Fields))
		for i, f := range nt.Fields {
			before[i] = f.Name
		}
		nt.ensureNamesUnique()
		for i, f := range nt.Fields {
			if f.Name != before[i] {
				t.Errorf("second pass changed field %d: %q -> %q", i, before[i], f.Name)
			}
		}
	})

	t.Run("fields and templates are separate namespaces", func(t *testing.T) {
		nt := New("Test")
		nt.AddField("Front")
		nt.AddTemplate("Front", "{{Front}}", "")
		nt.ensureNamesUnique()
		if nt.Fields[0].Name != "Front" || nt.Templates[0].Name != "Front" {
			t.Errorf("cross-namespace collision repaired: field %q template %q",
				nt.Fields[0].Name, nt.Templates[0].Name)
		}
	})
}

func TestRepositionSortIdx(t *testing.T) {
	t.Run("follows reordered field", func(t *testing.T) {
		nt := New("Test")
		// previously persisted order was A(0) B(1) C(2), sort field B
		nt.Fields = []Field{
			{Ord: OrdRef(2), Name: "C"},
			{Ord: OrdRef(0), Name: "A"},
			{Ord: OrdRef(1), Name: "B"},
		}
		nt.Config.SortFieldIdx = 1
		nt.repositionSortIdx()
		if nt.Config.SortFieldIdx != 2 {
			t.Errorf("expected sort index 2, got %d", nt.Config.SortFieldIdx)
		}
	})

	t.Run("clamps when sort field deleted", func(t *testing.T) {
		nt := New("Test")
		nt.Fields = []Field{
			{Ord: OrdRef(0), Name: "A"},
			{Ord: OrdRef(1), Name: "B"},
		}
		nt.Config.SortFieldIdx = 2
		nt.repositionSortIdx()
		if nt.Config.SortFieldIdx != 1 {
			t.Errorf("expected clamped sort index 1, got %d", nt.Config.SortFieldIdx)
		}
	})
}

func TestUpdatedRequirements(t *testing.T) {
	t.Run("single field question", func(t *testing.T) {
		nt := basicNotetype()
		reqs := nt.updatedRequirements(nt.parsedTemplates())
		if len(reqs) != 1 {
			t.Fatalf("expected 1 requirement, got %d", len(reqs))
		}
		req := reqs[0]
		if req.Kind != RequirementAny {
			t.Errorf("expected Any, got %v", req.Kind)
		}
		if len(req.FieldOrds) != 1 || req.FieldOrds[0] != 0 {
			t.Errorf("expected field ords [0], got %v", req.FieldOrds)
		}
	})

	t.Run("unparseable question is unsatisfiable", func(t *testing.T) {
		nt := basicNotetype()
		nt.Templates[0].Config.QuestionFormat = "{{#Front}}{{Back}}"
		reqs := nt.updatedRequirements(nt.parsedTemplates())
		if reqs[0].Kind != RequirementNone {
			t.Errorf("expected None, got %v", reqs[0].Kind)
		}
		if len(reqs[0].FieldOrds) != 0 {
			t.Errorf("expected no field ords, got %v", reqs[0].FieldOrds)
		}
	})

	t.Run("one requirement per template ordinal", func(t *testing.T) {
		nt := basicNotetype()
		nt.AddTemplate("Card 2", "{{Back}}", "{{Front}}")
		reqs := nt.updatedRequirements(nt.parsedTemplates())
		if len(reqs) != 2 {
			t.Fatalf("expected 2 requirements, got %d", len(reqs))
		}
		for i, req := range reqs {
			if req.CardOrd != uint32(i) {
				t.Errorf("requirement %d has card ord %d", i, req.CardOrd)
			}
		}
	})
}

func TestPrepareForUpdate(t *testing.T) {
	t.Run("rejects empty fields", func(t *testing.T) {
		nt := New("Test")
		nt.AddTemplate("Card", "{{Front}}", "")
		var invalid InvalidInputError
		if err := nt.PrepareForUpdate(nil); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("rejects empty templates", func(t *testing.T) {
		nt := New("Test")
		nt.AddField("Front")
		var invalid InvalidInputError
		if err := nt.PrepareForUpdate(nil); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("strips quotes from name", func(t *testing.T) {
		nt := basicNotetype()
		nt.Name = `My "Basic" Type`
		if err := nt.PrepareForUpdate(nil); err != nil {
			t.Fatalf("prepare failed: %v", err)
		}
		if nt.Name != "My Basic Type" {
			t.Errorf("expected quotes stripped, got %q", nt.Name)
		}
	})

	t.Run("rejects name that is only quotes", func(t *testing.T) {
		nt := basicNotetype()
		nt.Name = `""`
		var invalid InvalidInputError
		if err := nt.PrepareForUpdate(nil); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("sanitizes field names", func(t *testing.T) {
		nt := basicNotetype()
		nt.Fields[0].Name = ` Fro{nt}: `
		if err := nt.PrepareForUpdate(nil); err != nil {
			t.Fatalf("prepare failed: %v", err)
		}
		if nt.Fields[0].Name != "Front" {
			t.Errorf("expected sanitized name 'Front', got %q", nt.Fields[0].Name)
		}
	})

	t.Run("unsanitizable field name fails", func(t *testing.T) {
		nt := basicNotetype()
		nt.Fields[0].Name = `:"{}`
		var invalid InvalidInputError
		if err := nt.PrepareForUpdate(nil); !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("broken template reports ordinal", func(t *testing.T) {
		nt := basicNotetype()
		nt.AddTemplate("Card 2", "{{Back}}", "{{#Front}}oops")
		err := nt.PrepareForUpdate(nil)
		var saveErr TemplateSaveError
		if !errors.As(err, &saveErr) {
			t.Fatalf("expected TemplateSaveError, got %v", err)
		}
		if saveErr.Ordinal != 1 {
			t.Errorf("expected ordinal 1, got %d", saveErr.Ordinal)
		}
		if saveErr.Notetype != "Basic" {
			t.Errorf("expected notetype name in error, got %q", saveErr.Notetype)
		}
	})

	t.Run("stores requirements in config", func(t *testing.T) {
		nt := basicNotetype()
		if err := nt.PrepareForUpdate(nil); err != nil {
			t.Fatalf("prepare failed: %v", err)
		}
		if len(nt.Config.Requirements) != len(nt.Templates) {
			t.Errorf("expected %d requirements, got %d",
				len(nt.Templates), len(nt.Config.Requirements))
		}
	})
}

func TestPrepareForAdding(t *testing.T) {
	nt := basicNotetype()
	if err := nt.PrepareForAdding(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if nt.Config.TargetDeckID != DefaultDeckID {
		t.Errorf("expected default deck id %d, got %d", DefaultDeckID, nt.Config.TargetDeckID)
	}

	nt2 := basicNotetype()
	nt2.Config.TargetDeckID = 42
	if err := nt2.PrepareForAdding(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if nt2.Config.TargetDeckID != 42 {
		t.Errorf("explicit deck id overwritten: got %d", nt2.Config.TargetDeckID)
	}
}

// persistedOrds simulates a save by stamping each field and template with its
// current position, as the storage layer does on load.
func persistedOrds(nt *Notetype) {
	for i := range nt.Fields {
		nt.Fields[i].Ord = OrdRef(uint32(i))
	}
	for i := range nt.Templates {
		nt.Templates[i].Ord = OrdRef(uint32(i))
	}
}

func TestRenamePropagation(t *testing.T) {
	prior := basicNotetype()
	persistedOrds(prior)

	nt := basicNotetype()
	persistedOrds(nt)
	nt.Fields[0].Name = "Question"

	reqsBefore := nt.updatedRequirements(nt.parsedTemplates())

	if err := nt.PrepareForUpdate(prior); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if got := nt.Templates[0].Config.QuestionFormat; got != "{{Question}}" {
		t.Errorf("question format not rewritten: %q", got)
	}
	if got := nt.Templates[0].Config.AnswerFormat; got != "{{Question}}<hr>{{Back}}" {
		t.Errorf("answer format not rewritten: %q", got)
	}

	// the ordinal-based requirement is unchanged by a pure rename
	reqsAfter := nt.updatedRequirements(nt.parsedTemplates())
	if len(reqsBefore) != len(reqsAfter) {
		t.Fatalf("requirement count changed: %d -> %d", len(reqsBefore), len(reqsAfter))
	}
	for i := range reqsBefore {
		if reqsBefore[i].Kind != reqsAfter[i].Kind {
			t.Errorf("requirement %d kind changed: %v -> %v", i, reqsBefore[i].Kind, reqsAfter[i].Kind)
		}
		if len(reqsBefore[i].FieldOrds) != len(reqsAfter[i].FieldOrds) {
			t.Errorf("requirement %d ords changed: %v -> %v", i, reqsBefore[i].FieldOrds, reqsAfter[i].FieldOrds)
		}
	}
}

func TestRemovalPropagation(t *testing.T) {
	t.Run("references removed from parsed templates", func(t *testing.T) {
		prior := basicNotetype()
		persistedOrds(prior)

		nt := basicNotetype()
		persistedOrds(nt)
		// drop Back; Front keeps its prior ordinal
		nt.Fields = nt.Fields[:1]

		if err := nt.PrepareForUpdate(prior); err != nil {
			t.Fatalf("prepare failed: %v", err)
		}
		if got := nt.Templates[0].Config.AnswerFormat; got != "{{Front}}<hr>" {
			t.Errorf("reference to removed field survives: %q", got)
		}
	})

	t.Run("unparsed templates left byte-for-byte", func(t *testing.T) {
		prior := basicNotetype()
		persistedOrds(prior)

		nt := basicNotetype()
		persistedOrds(nt)
		nt.Fields = nt.Fields[:1]
		broken := "{{#Back}}never closed"
		nt.Templates[0].Config.AnswerFormat = broken

		changes := nt.renamedAndRemovedFields(prior)
		nt.updateTemplatesForRenamedAndRemovedFields(changes, nt.parsedTemplates())
		if nt.Templates[0].Config.AnswerFormat != broken {
			t.Errorf("unparsed template modified: %q", nt.Templates[0].Config.AnswerFormat)
		}
	})

	t.Run("new fields never trigger remapping", func(t *testing.T) {
		prior := basicNotetype()
		persistedOrds(prior)

		nt := basicNotetype()
		persistedOrds(nt)
		nt.AddField("Hint") // no prior ordinal

		changes := nt.renamedAndRemovedFields(prior)
		if len(changes) != 0 {
			t.Errorf("expected no changes, got %v", changes)
		}
	})
}

func TestGetTemplate(t *testing.T) {
	t.Run("standard indexes by card ordinal", func(t *testing.T) {
		nt := basicNotetype()
		nt.AddTemplate("Card 2", "{{Back}}", "{{Front}}")
		tmpl, err := nt.GetTemplate(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tmpl.Name != "Card 2" {
			t.Errorf("expected 'Card 2', got %q", tmpl.Name)
		}
	})

	t.Run("out of range is not found", func(t *testing.T) {
		nt := basicNotetype()
		if _, err := nt.GetTemplate(5); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("cloze always serves first template", func(t *testing.T) {
		nt := New("Cloze")
		nt.Config.Kind = KindCloze
		nt.AddField("Text")
		nt.AddTemplate("Cloze", "{{cloze:Text}}", "{{cloze:Text}}")
		tmpl, err := nt.GetTemplate(7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tmpl.Name != "Cloze" {
			t.Errorf("expected cloze template, got %q", tmpl.Name)
		}
	})
}

func TestGetFieldOrd(t *testing.T) {
	nt := basicNotetype()
	if ord, ok := nt.GetFieldOrd("back"); !ok || ord != 1 {
		t.Errorf("expected (1, true), got (%d, %t)", ord, ok)
	}
	if _, ok := nt.GetFieldOrd("Missing"); ok {
		t.Errorf("expected miss for unknown field")
	}
}

func TestNormalizeNames(t *testing.T) {
	nt := basicNotetype()
	// decomposed e + combining acute
	nt.Name = "Café"
	if err := nt.PrepareForUpdate(nil); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if nt.Name != "Café" {
		t.Errorf("expected NFC-normalized name, got %q", nt.Name)
	}
}
