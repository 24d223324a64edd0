package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
create table if not exists cache_entries (
	key text primary key,
	kind text not null,
	value text not null
);`

// SQLiteBackend keeps entries in a single table. Save replaces the table
// contents inside one transaction, so a failed save leaves the previous
// snapshot intact.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at path. Use ":memory:"
// for a throwaway database.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, newCacheError(ErrCauseReadFailure, path, err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, newCacheError(ErrCauseWriteFailure, path, err)
	}
	return &SQLiteBackend{
		path: path,
		db:   db,
	}, nil
}

func (b *SQLiteBackend) Location() string {
	return "sqlite:" + b.path
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Load() (map[string]Value, error) {
	rows, err := b.db.Query("select key, kind, value from cache_entries")
	if err != nil {
		return nil, newCacheError(ErrCauseReadFailure, b.path, err)
	}
	defer rows.Close()

	entries := make(map[string]Value)
	for rows.Next() {
		var key, kind, value string
		if err := rows.Scan(&key, &kind, &value); err != nil {
			return nil, newCacheError(ErrCauseReadFailure, b.path, err)
		}
		switch Kind(kind) {
		case KindText:
			entries[key] = TextValue(value)
		case KindJSON:
			entries[key] = JSONValue([]byte(value))
		default:
			return nil, newCacheError(ErrCauseParseFailure, b.path, fmt.Errorf("entry %q has unknown kind %q", key, kind))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, newCacheError(ErrCauseReadFailure, b.path, err)
	}
	return entries, nil
}

func (b *SQLiteBackend) Save(entries map[string]Value) error {
	tx, err := b.db.Begin()
	if err != nil {
		return newCacheError(ErrCauseWriteFailure, b.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("delete from cache_entries"); err != nil {
		return newCacheError(ErrCauseWriteFailure, b.path, err)
	}

	stmt, err := tx.Prepare("insert into cache_entries (key, kind, value) values (?, ?, ?)")
	if err != nil {
		return newCacheError(ErrCauseWriteFailure, b.path, err)
	}
	defer stmt.Close()

	for key, value := range entries {
		if _, err := stmt.Exec(key, string(value.Kind()), string(value.Bytes())); err != nil {
			return newCacheError(ErrCauseWriteFailure, b.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newCacheError(ErrCauseWriteFailure, b.path, err)
	}
	return nil
}
