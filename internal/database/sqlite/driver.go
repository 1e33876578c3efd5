// Package sqlite is the SQLite implementation of database.DB, backed by
// database/sql and the CGo-free modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/koustreak/DatView/internal/database"
	"github.com/koustreak/DatView/internal/errs"

	_ "modernc.org/sqlite" // register "sqlite" driver
)

// Driver is a SQLite implementation of database.DB for one database file.
type Driver struct {
	db *sql.DB
}

// Open opens the SQLite database file at path and validates it before
// returning. The file is opened read-only: an import must have no side
// effects on the source, and SQLite would otherwise silently create a
// missing file or accept an empty one.
func Open(ctx context.Context, path string) (*Driver, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidDatabase,
			fmt.Sprintf("cannot stat database file %q", path), err)
	}
	if info.IsDir() {
		return nil, errs.New(errs.ErrKindInvalidDatabase,
			fmt.Sprintf("%q is a directory, not a database file", path))
	}
	if info.Size() == 0 {
		// SQLite treats a zero-byte file as a valid empty database;
		// for a viewer it is a broken input.
		return nil, errs.New(errs.ErrKindInvalidDatabase,
			fmt.Sprintf("%q is empty, not a database", path))
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidDatabase,
			"cannot open database file", err)
	}

	// SQLite serialises access through a single connection.
	db.SetMaxOpenConns(1)

	d := &Driver{db: db}

	// sql.Open does not read the file; probe the catalog so a garbage
	// file fails here instead of on the first real query.
	if err := d.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// --- database.DB implementation ---

// Ping verifies the file is a readable database by touching its catalog.
func (d *Driver) Ping(ctx context.Context) error {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master`).Scan(&n)
	if err != nil {
		return mapError(err, errs.ErrKindInvalidDatabase, "catalog probe failed")
	}
	return nil
}

// Close releases the underlying handle.
func (d *Driver) Close() {
	_ = d.db.Close()
}

// ListTables returns the user tables recorded in sqlite_master, in
// catalog order. Views, indexes, triggers, and SQLite's internal
// bookkeeping tables (sqlite_sequence and friends) are excluded.
func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	const q = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite\_%' ESCAPE '\'`

	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(err, errs.ErrKindInvalidDatabase, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, errs.ErrKindInvalidDatabase, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, errs.ErrKindInvalidDatabase, "error iterating catalog")
	}
	return tables, nil
}

// TableExists reports whether a user table with the given name exists.
func (d *Driver) TableExists(ctx context.Context, table string) (bool, error) {
	const q = `
		SELECT 1
		FROM sqlite_master
		WHERE type = 'table'
		  AND name = ?`

	var exists int
	err := d.db.QueryRowContext(ctx, q, table).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, errs.ErrKindInvalidDatabase, "failed to check table existence")
	}
	return true, nil
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, errs.ErrKindTableRead, "query failed")
	}
	return &sqliteRows{rows: rows}, nil
}

// --- sql.DB type wrappers ---

type sqliteRows struct {
	rows *sql.Rows
}

func (r *sqliteRows) Next() bool                 { return r.rows.Next() }
func (r *sqliteRows) Scan(dest ...any) error     { return r.rows.Scan(dest...) }
func (r *sqliteRows) Columns() ([]string, error) { return r.rows.Columns() }
func (r *sqliteRows) Close()                     { _ = r.rows.Close() }
func (r *sqliteRows) Err() error                 { return r.rows.Err() }
