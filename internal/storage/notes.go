package storage

import (
	"encoding/json"
	"fmt"

	"github.com/deckhand-cli/deckhand/internal/notetype"
)

// Note is a user record instantiating a notetype. Only what the schema layer
// needs is modeled here; rendering and review state live elsewhere.
type Note struct {
	ID         int64
	NotetypeID notetype.ID
	Fields     []string
	SortField  string
	MTimeSecs  int64
	USN        int32
}

// AddNote inserts a note and one card per card ordinal.
func (qs *queries) AddNote(note *Note, cardOrds []uint32, deckID int64) error {
	fields, err := json.Marshal(note.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode note fields: %w", err)
	}
	res, err := qs.q.Exec(
		`INSERT INTO notes (ntid, fields, sort_field, mtime_secs, usn) VALUES (?, ?, ?, ?, ?)`,
		int64(note.NotetypeID), string(fields), note.SortField, note.MTimeSecs, note.USN,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new note id: %w", err)
	}
	note.ID = id

	for _, ord := range cardOrds {
		if _, err := qs.q.Exec(
			`INSERT INTO cards (note_id, ord, deck_id) VALUES (?, ?, ?)`,
			id, ord, deckID,
		); err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
	}
	return nil
}

// NoteCount returns the number of notes using the given notetype.
func (qs *queries) NoteCount(id notetype.ID) (int, error) {
	var count int
	if err := qs.q.QueryRow(
		`SELECT COUNT(*) FROM notes WHERE ntid = ?`, int64(id),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// CardCount returns the number of cards belonging to the notetype's notes.
func (qs *queries) CardCount(id notetype.ID) (int, error) {
	var count int
	if err := qs.q.QueryRow(
		`SELECT COUNT(*) FROM cards WHERE note_id IN (SELECT id FROM notes WHERE ntid = ?)`,
		int64(id),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}
