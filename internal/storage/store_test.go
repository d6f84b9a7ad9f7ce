package storage

import (
	"errors"
	"testing"

	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/stock"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNotetypeRoundTrip(t *testing.T) {
	s := openTestStore(t)

	nt := stock.ByName("Basic")
	if err := nt.PrepareForAdding(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if err := s.AddNotetype(nt); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if nt.ID == 0 {
		t.Fatal("expected allocated id")
	}

	loaded, err := s.GetNotetype(nt.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("notetype missing after add")
	}
	if loaded.Name != nt.Name {
		t.Errorf("name mismatch: %q != %q", loaded.Name, nt.Name)
	}
	if len(loaded.Fields) != 2 || len(loaded.Templates) != 1 {
		t.Fatalf("unexpected shape: %d fields, %d templates", len(loaded.Fields), len(loaded.Templates))
	}
	if loaded.Fields[1].Name != "Back" {
		t.Errorf("field order lost: %q", loaded.Fields[1].Name)
	}
	if loaded.Fields[1].Ord == nil || *loaded.Fields[1].Ord != 1 {
		t.Errorf("persisted ordinal missing on loaded field")
	}
	if loaded.Templates[0].Config.QuestionFormat != "{{Front}}" {
		t.Errorf("template config lost: %q", loaded.Templates[0].Config.QuestionFormat)
	}
	if len(loaded.Config.Requirements) != 1 {
		t.Errorf("config requirements lost: %+v", loaded.Config.Requirements)
	}
}

func TestGetNotetypeUnknown(t *testing.T) {
	s := openTestStore(t)
	nt, err := s.GetNotetype(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if nt != nil {
		t.Errorf("expected nil for unknown id")
	}
}

func TestNotetypeIDByName(t *testing.T) {
	s := openTestStore(t)
	nt := stock.ByName("Basic")
	if err := s.AddNotetype(nt); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	id, ok, err := s.NotetypeIDByName("Basic")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !ok || id != nt.ID {
		t.Errorf("expected (%d, true), got (%d, %t)", nt.ID, id, ok)
	}

	if _, ok, err := s.NotetypeIDByName("basic"); err != nil || ok {
		t.Errorf("name lookup should be exact: ok=%t err=%v", ok, err)
	}
}

func TestUpdateNotetypeFieldsReplacesRows(t *testing.T) {
	s := openTestStore(t)
	nt := stock.ByName("Basic")
	if err := s.AddNotetype(nt); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := s.UpdateNotetypeFields(nt.ID, []notetype.Field{notetype.NewField("Only")}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	loaded, err := s.GetNotetype(nt.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(loaded.Fields) != 1 || loaded.Fields[0].Name != "Only" {
		t.Errorf("fields not replaced: %+v", loaded.Fields)
	}
}

func TestTransactRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	sentinel := errors.New("boom")

	err := s.Transact(func(tx *Tx) error {
		if err := tx.AddNotetype(stock.ByName("Basic")); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	names, err := s.AllNotetypeNames()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("rolled-back insert visible: %+v", names)
	}
}

func TestCollectionState(t *testing.T) {
	s := openTestStore(t)

	t.Run("usn defaults to zero", func(t *testing.T) {
		usn, err := s.USN()
		if err != nil {
			t.Fatalf("usn failed: %v", err)
		}
		if usn != 0 {
			t.Errorf("expected 0, got %d", usn)
		}
	})

	t.Run("current notetype round trip", func(t *testing.T) {
		if _, ok, err := s.CurrentNotetypeID(); err != nil || ok {
			t.Fatalf("expected unset current notetype: ok=%t err=%v", ok, err)
		}
		if err := s.SetCurrentNotetypeID(3); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		id, ok, err := s.CurrentNotetypeID()
		if err != nil || !ok || id != 3 {
			t.Errorf("expected (3, true), got (%d, %t) err=%v", id, ok, err)
		}
	})

	t.Run("schema modified stamp", func(t *testing.T) {
		if err := s.SetSchemaModified(12345); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		got, err := s.SchemaModified()
		if err != nil || got != 12345 {
			t.Errorf("expected 12345, got %d err=%v", got, err)
		}
	})
}

func TestNotesAndCards(t *testing.T) {
	s := openTestStore(t)
	nt := stock.ByName("Basic")
	if err := s.AddNotetype(nt); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	note := &Note{NotetypeID: nt.ID, Fields: []string{"hello", "world"}, SortField: "hello"}
	if err := s.AddNote(note, []uint32{0}, 1); err != nil {
		t.Fatalf("add note failed: %v", err)
	}
	if note.ID == 0 {
		t.Error("expected allocated note id")
	}

	notes, err := s.NoteCount(nt.ID)
	if err != nil || notes != 1 {
		t.Errorf("expected 1 note, got %d err=%v", notes, err)
	}
	cards, err := s.CardCount(nt.ID)
	if err != nil || cards != 1 {
		t.Errorf("expected 1 card, got %d err=%v", cards, err)
	}

	if err := s.RemoveNotetype(nt.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	notes, _ = s.NoteCount(nt.ID)
	cards, _ = s.CardCount(nt.ID)
	if notes != 0 || cards != 0 {
		t.Errorf("cascade failed: %d notes, %d cards", notes, cards)
	}
}
