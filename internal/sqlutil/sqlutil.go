// Package sqlutil holds small database/sql helpers.
package sqlutil

import "database/sql"

// ScanRows scans all rows into a slice using the provided scanner, closing
// the rows when done.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
