package collection

import (
	"time"

	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/stock"
	"github.com/deckhand-cli/deckhand/internal/storage"
)

// AddNotetype validates nt and persists it, allocating an id. The notetype's
// name grows a "+" suffix as needed to stay unique within the collection.
func (c *Collection) AddNotetype(nt *notetype.Notetype) error {
	return c.store.Transact(func(tx *storage.Tx) error {
		usn, err := tx.USN()
		if err != nil {
			return err
		}
		nt.SetModified(usn)
		return addNotetypeInner(tx, nt, usn)
	})
}

func addNotetypeInner(tx *storage.Tx, nt *notetype.Notetype, usn int32) error {
	if err := nt.PrepareForAdding(); err != nil {
		return err
	}
	if err := ensureNotetypeNameUnique(tx, nt, usn); err != nil {
		return err
	}
	return tx.AddNotetype(nt)
}

// ensureNotetypeNameUnique appends a "+" to the name until no other notetype
// claims it. Name growth is monotonic, so the loop terminates.
func ensureNotetypeNameUnique(tx *storage.Tx, nt *notetype.Notetype, usn int32) error {
	for {
		id, ok, err := tx.NotetypeIDByName(nt.Name)
		if err != nil {
			return err
		}
		if !ok || id == nt.ID {
			return nil
		}
		nt.Name += "+"
		nt.SetModified(usn)
	}
}

// UpdateNotetype saves changes to an existing notetype. Validation runs
// against the previously persisted version before the transaction opens; a
// caller holding a modification time older than the persisted one is rejected
// as stale. When preserveUSN is set the caller's modification time and sync
// sequence number are kept, as the sync protocol requires.
func (c *Collection) UpdateNotetype(nt *notetype.Notetype, preserveUSN bool) error {
	prior, err := c.GetNotetype(nt.ID)
	if err != nil {
		return err
	}
	if err := nt.PrepareForUpdate(prior); err != nil {
		return err
	}
	err = c.store.Transact(func(tx *storage.Tx) error {
		if prior != nil {
			if prior.MTimeSecs > nt.MTimeSecs {
				return notetype.InvalidInputError{Message: "attempt to save stale notetype"}
			}
			if c.NoteUpdater != nil {
				if err := c.NoteUpdater.UpdateNotes(nt, len(prior.Fields), prior.Config.SortFieldIdx, c.NormalizeText); err != nil {
					return err
				}
			}
			if c.CardUpdater != nil {
				if err := c.CardUpdater.UpdateCards(nt, len(prior.Templates)); err != nil {
					return err
				}
			}
		}

		usn, err := tx.USN()
		if err != nil {
			return err
		}
		if !preserveUSN {
			nt.SetModified(usn)
		}
		if err := ensureNotetypeNameUnique(tx, nt, usn); err != nil {
			return err
		}

		if err := tx.UpdateNotetypeConfig(nt); err != nil {
			return err
		}
		if err := tx.UpdateNotetypeFields(nt.ID, nt.Fields); err != nil {
			return err
		}
		return tx.UpdateNotetypeTemplates(nt.ID, nt.Templates)
	})
	if err != nil {
		return err
	}
	// Evict only once the commit is durable; evicting inside the transaction
	// would let a rollback leave the cache ahead of storage.
	delete(c.notetypeCache, nt.ID)
	return nil
}

// GetNotetype returns a shared snapshot of the notetype, or (nil, nil) if the
// id is unknown. Snapshots are cached and must not be mutated by callers;
// copy before editing and saving.
func (c *Collection) GetNotetype(id notetype.ID) (*notetype.Notetype, error) {
	if nt, ok := c.notetypeCache[id]; ok {
		return nt, nil
	}
	nt, err := c.store.GetNotetype(id)
	if err != nil || nt == nil {
		return nil, err
	}
	c.notetypeCache[id] = nt
	return nt, nil
}

// GetNotetypeByName resolves a name to a snapshot, or (nil, nil) if no
// notetype has that name.
func (c *Collection) GetNotetypeByName(name string) (*notetype.Notetype, error) {
	id, ok, err := c.store.NotetypeIDByName(name)
	if err != nil || !ok {
		return nil, err
	}
	return c.GetNotetype(id)
}

// GetAllNotetypes returns snapshots of every notetype, ordered by name.
func (c *Collection) GetAllNotetypes() ([]*notetype.Notetype, error) {
	names, err := c.store.AllNotetypeNames()
	if err != nil {
		return nil, err
	}
	all := make([]*notetype.Notetype, 0, len(names))
	for _, entry := range names {
		nt, err := c.GetNotetype(entry.ID)
		if err != nil {
			return nil, err
		}
		if nt != nil {
			all = append(all, nt)
		}
	}
	return all, nil
}

// RemoveNotetype deletes the notetype and everything depending on it. Any
// schema removal forces a full sync. If the last notetype was removed, the
// first stock notetype is added in its place so the collection is never left
// without one; otherwise the first remaining notetype becomes current.
func (c *Collection) RemoveNotetype(id notetype.ID) error {
	err := c.store.Transact(func(tx *storage.Tx) error {
		if err := tx.SetSchemaModified(time.Now().Unix()); err != nil {
			return err
		}
		if err := tx.RemoveNotetype(id); err != nil {
			return err
		}
		remaining, err := tx.AllNotetypeNames()
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			usn, err := tx.USN()
			if err != nil {
				return err
			}
			replacement := stock.All()[0]
			replacement.SetModified(usn)
			if err := addNotetypeInner(tx, replacement, usn); err != nil {
				return err
			}
			return tx.SetCurrentNotetypeID(replacement.ID)
		}
		return tx.SetCurrentNotetypeID(remaining[0].ID)
	})
	if err != nil {
		return err
	}
	delete(c.notetypeCache, id)
	return nil
}
