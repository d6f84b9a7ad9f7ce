package stock

import (
	"testing"
)

func TestAllPassValidation(t *testing.T) {
	for _, nt := range All() {
		t.Run(nt.Name, func(t *testing.T) {
			if err := nt.PrepareForAdding(); err != nil {
				t.Errorf("stock notetype fails validation: %v", err)
			}
			if len(nt.Config.Requirements) != len(nt.Templates) {
				t.Errorf("expected %d requirements, got %d",
					len(nt.Templates), len(nt.Config.Requirements))
			}
		})
	}
}

func TestClozeShape(t *testing.T) {
	nt := ByName("Cloze")
	if nt == nil {
		t.Fatal("missing Cloze stock notetype")
	}
	if !nt.IsCloze() {
		t.Error("Cloze notetype not marked cloze")
	}
	if len(nt.Templates) != 1 {
		t.Errorf("cloze notetypes carry exactly one template, got %d", len(nt.Templates))
	}
}

func TestByNameUnknown(t *testing.T) {
	if nt := ByName("nope"); nt != nil {
		t.Errorf("expected nil for unknown stock name, got %v", nt.Name)
	}
}
