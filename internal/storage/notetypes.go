package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/sqlutil"
)

// NotetypeName pairs a notetype id with its name.
type NotetypeName struct {
	ID   notetype.ID
	Name string
}

// AddNotetype inserts a new notetype with its fields and templates,
// allocating an id when the notetype has none.
func (qs *queries) AddNotetype(nt *notetype.Notetype) error {
	config, err := json.Marshal(nt.Config)
	if err != nil {
		return fmt.Errorf("failed to encode notetype config: %w", err)
	}

	if nt.ID == 0 {
		res, err := qs.q.Exec(
			`INSERT INTO notetypes (name, mtime_secs, usn, config) VALUES (?, ?, ?, ?)`,
			nt.Name, nt.MTimeSecs, nt.USN, string(config),
		)
		if err != nil {
			return fmt.Errorf("failed to insert notetype: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new notetype id: %w", err)
		}
		nt.ID = notetype.ID(id)
	} else {
		if _, err := qs.q.Exec(
			`INSERT INTO notetypes (id, name, mtime_secs, usn, config) VALUES (?, ?, ?, ?, ?)`,
			int64(nt.ID), nt.Name, nt.MTimeSecs, nt.USN, string(config),
		); err != nil {
			return fmt.Errorf("failed to insert notetype: %w", err)
		}
	}

	if err := qs.UpdateNotetypeFields(nt.ID, nt.Fields); err != nil {
		return err
	}
	return qs.UpdateNotetypeTemplates(nt.ID, nt.Templates)
}

// UpdateNotetypeConfig updates the notetype row itself.
func (qs *queries) UpdateNotetypeConfig(nt *notetype.Notetype) error {
	config, err := json.Marshal(nt.Config)
	if err != nil {
		return fmt.Errorf("failed to encode notetype config: %w", err)
	}
	if _, err := qs.q.Exec(
		`UPDATE notetypes SET name = ?, mtime_secs = ?, usn = ?, config = ? WHERE id = ?`,
		nt.Name, nt.MTimeSecs, nt.USN, string(config), int64(nt.ID),
	); err != nil {
		return fmt.Errorf("failed to update notetype: %w", err)
	}
	return nil
}

// UpdateNotetypeFields replaces the stored field rows. Each field's row
// ordinal is its current position in the slice.
func (qs *queries) UpdateNotetypeFields(id notetype.ID, fields []notetype.Field) error {
	if _, err := qs.q.Exec(`DELETE FROM fields WHERE ntid = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to clear fields: %w", err)
	}
	for ord, f := range fields {
		config, err := json.Marshal(f.Config)
		if err != nil {
			return fmt.Errorf("failed to encode field config: %w", err)
		}
		if _, err := qs.q.Exec(
			`INSERT INTO fields (ntid, ord, name, config) VALUES (?, ?, ?, ?)`,
			int64(id), ord, f.Name, string(config),
		); err != nil {
			return fmt.Errorf("failed to insert field: %w", err)
		}
	}
	return nil
}

// UpdateNotetypeTemplates replaces the stored template rows.
func (qs *queries) UpdateNotetypeTemplates(id notetype.ID, templates []notetype.CardTemplate) error {
	if _, err := qs.q.Exec(`DELETE FROM templates WHERE ntid = ?`, int64(id)); err != nil {
		return fmt.Errorf("failed to clear templates: %w", err)
	}
	for ord, t := range templates {
		config, err := json.Marshal(t.Config)
		if err != nil {
			return fmt.Errorf("failed to encode template config: %w", err)
		}
		if _, err := qs.q.Exec(
			`INSERT INTO templates (ntid, ord, name, config) VALUES (?, ?, ?, ?)`,
			int64(id), ord, t.Name, string(config),
		); err != nil {
			return fmt.Errorf("failed to insert template: %w", err)
		}
	}
	return nil
}

// GetNotetype loads a notetype with its fields and templates. It returns
// (nil, nil) when the id is unknown. Loaded fields and templates carry their
// persisted row ordinal, which the validation pipeline uses as the prior
// position when the schema is next edited.
func (qs *queries) GetNotetype(id notetype.ID) (*notetype.Notetype, error) {
	var (
		nt     notetype.Notetype
		config string
	)
	err := qs.q.QueryRow(
		`SELECT id, name, mtime_secs, usn, config FROM notetypes WHERE id = ?`, int64(id),
	).Scan(&nt.ID, &nt.Name, &nt.MTimeSecs, &nt.USN, &config)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notetype: %w", err)
	}
	if err := json.Unmarshal([]byte(config), &nt.Config); err != nil {
		return nil, fmt.Errorf("failed to decode notetype config: %w", err)
	}

	if nt.Fields, err = qs.notetypeFields(id); err != nil {
		return nil, err
	}
	if nt.Templates, err = qs.notetypeTemplates(id); err != nil {
		return nil, err
	}
	return &nt, nil
}

func (qs *queries) notetypeFields(id notetype.ID) ([]notetype.Field, error) {
	rows, err := qs.q.Query(
		`SELECT ord, name, config FROM fields WHERE ntid = ? ORDER BY ord`, int64(id),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (notetype.Field, error) {
		var (
			ord    uint32
			f      notetype.Field
			config string
		)
		if err := rows.Scan(&ord, &f.Name, &config); err != nil {
			return f, err
		}
		f.Ord = notetype.OrdRef(ord)
		if err := json.Unmarshal([]byte(config), &f.Config); err != nil {
			return f, fmt.Errorf("failed to decode field config: %w", err)
		}
		return f, nil
	})
}

func (qs *queries) notetypeTemplates(id notetype.ID) ([]notetype.CardTemplate, error) {
	rows, err := qs.q.Query(
		`SELECT ord, name, config FROM templates WHERE ntid = ? ORDER BY ord`, int64(id),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (notetype.CardTemplate, error) {
		var (
			ord    uint32
			t      notetype.CardTemplate
			config string
		)
		if err := rows.Scan(&ord, &t.Name, &config); err != nil {
			return t, err
		}
		t.Ord = notetype.OrdRef(ord)
		if err := json.Unmarshal([]byte(config), &t.Config); err != nil {
			return t, fmt.Errorf("failed to decode template config: %w", err)
		}
		return t, nil
	})
}

// NotetypeIDByName looks up a notetype id by exact name.
func (qs *queries) NotetypeIDByName(name string) (notetype.ID, bool, error) {
	var id notetype.ID
	err := qs.q.QueryRow(`SELECT id FROM notetypes WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up notetype by name: %w", err)
	}
	return id, true, nil
}

// AllNotetypeNames lists every notetype id and name, ordered by name.
func (qs *queries) AllNotetypeNames() ([]NotetypeName, error) {
	rows, err := qs.q.Query(`SELECT id, name FROM notetypes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notetypes: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (NotetypeName, error) {
		var n NotetypeName
		err := rows.Scan(&n.ID, &n.Name)
		return n, err
	})
}

// RemoveNotetype deletes a notetype and cascades to its dependent notes and
// cards.
func (qs *queries) RemoveNotetype(id notetype.ID) error {
	stmts := []string{
		`DELETE FROM cards WHERE note_id IN (SELECT id FROM notes WHERE ntid = ?)`,
		`DELETE FROM notes WHERE ntid = ?`,
		`DELETE FROM fields WHERE ntid = ?`,
		`DELETE FROM templates WHERE ntid = ?`,
		`DELETE FROM notetypes WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := qs.q.Exec(stmt, int64(id)); err != nil {
			return fmt.Errorf("failed to remove notetype: %w", err)
		}
	}
	return nil
}
