package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/deckhand-cli/deckhand/internal/notetype"
)

// Collection-level state lives in the col key/value table.
const (
	keyUSN             = "usn"
	keyCurrentNotetype = "current_notetype"
	keySchemaModified  = "schema_mtime_secs"
)

func (qs *queries) getKV(key string) (string, bool, error) {
	var value string
	err := qs.q.QueryRow(`SELECT value FROM col WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read collection state %q: %w", key, err)
	}
	return value, true, nil
}

func (qs *queries) setKV(key, value string) error {
	if _, err := qs.q.Exec(
		`INSERT INTO col (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value,
	); err != nil {
		return fmt.Errorf("failed to write collection state %q: %w", key, err)
	}
	return nil
}

func (qs *queries) getKVInt(key string) (int64, error) {
	value, ok, err := qs.getKV(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt collection state %q: %w", key, err)
	}
	return n, nil
}

// USN returns the collection's current sync sequence number.
func (qs *queries) USN() (int32, error) {
	n, err := qs.getKVInt(keyUSN)
	return int32(n), err
}

// SetUSN stores the sync sequence number; the sync protocol owns advancing it.
func (qs *queries) SetUSN(usn int32) error {
	return qs.setKV(keyUSN, strconv.FormatInt(int64(usn), 10))
}

// CurrentNotetypeID returns the notetype new notes default to.
func (qs *queries) CurrentNotetypeID() (notetype.ID, bool, error) {
	value, ok, err := qs.getKV(keyCurrentNotetype)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt collection state %q: %w", keyCurrentNotetype, err)
	}
	return notetype.ID(n), true, nil
}

// SetCurrentNotetypeID records the notetype new notes default to.
func (qs *queries) SetCurrentNotetypeID(id notetype.ID) error {
	return qs.setKV(keyCurrentNotetype, strconv.FormatInt(int64(id), 10))
}

// SetSchemaModified stamps the schema-modification time, which forces the
// next sync to be a full one.
func (qs *queries) SetSchemaModified(mtimeSecs int64) error {
	return qs.setKV(keySchemaModified, strconv.FormatInt(mtimeSecs, 10))
}

// SchemaModified returns the last schema-modification stamp.
func (qs *queries) SchemaModified() (int64, error) {
	return qs.getKVInt(keySchemaModified)
}
