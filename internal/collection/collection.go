// Package collection coordinates schema changes against the store: it wraps
// the notetype validation pipeline in a transaction, enforces name uniqueness
// and optimistic-concurrency checks against persisted state, triggers
// dependent note and card updates, and maintains a read-through cache of live
// notetype snapshots.
package collection

import (
	"github.com/deckhand-cli/deckhand/internal/notetype"
	"github.com/deckhand-cli/deckhand/internal/storage"
)

// NoteUpdater reconciles existing notes after a notetype's fields change.
type NoteUpdater interface {
	UpdateNotes(nt *notetype.Notetype, oldFieldCount int, oldSortFieldIdx uint32, normalizeText bool) error
}

// CardUpdater reconciles existing cards after a notetype's templates change.
type CardUpdater interface {
	UpdateCards(nt *notetype.Notetype, oldTemplateCount int) error
}

// Collection is a single-writer handle to one collection database. It must
// not be shared across concurrent mutators without external synchronization;
// cached snapshots, however, remain valid for readers across writes because
// writers evict entries rather than mutating them.
type Collection struct {
	store *storage.Store

	// NormalizeText is passed through to the note updater on schema changes.
	NormalizeText bool

	// NoteUpdater and CardUpdater are notified inside the update transaction
	// when a previously persisted schema changes. Either may be nil.
	NoteUpdater NoteUpdater
	CardUpdater CardUpdater

	// notetypeCache maps id to a shared snapshot. Entries are treated as
	// immutable once inserted and are evicted, never updated, on writes.
	notetypeCache map[notetype.ID]*notetype.Notetype
}

// Open opens or creates the collection database at path.
func Open(path string) (*Collection, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// OpenInMemory opens an in-memory collection, used by tests.
func OpenInMemory() (*Collection, error) {
	store, err := storage.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// New wraps an open store.
func New(store *storage.Store) *Collection {
	return &Collection{
		store:         store,
		NormalizeText: true,
		notetypeCache: make(map[notetype.ID]*notetype.Notetype),
	}
}

// Store exposes the underlying store for read helpers.
func (c *Collection) Store() *storage.Store {
	return c.store
}

// Close closes the underlying store.
func (c *Collection) Close() error {
	return c.store.Close()
}
