// Package database defines the read-only contract DatView needs from an
// embedded database engine. The layers above this package talk only to
// these interfaces — they never import the sqlite driver directly.
//
// The contract is deliberately tiny: no compile-time schema is assumed
// anywhere. Table names, column names, and field types are all
// discovered per call from the open file.
package database

import "context"

// DB is the central contract for one open database file.
// All operations are reads; DatView never writes to the source file.
type DB interface {
	// Ping verifies the file is a readable database.
	Ping(ctx context.Context) error

	// Close releases the underlying handle.
	Close()

	// ListTables returns the names of all user tables in the file's
	// catalog, in discovery order. Views, indexes, and the engine's
	// internal bookkeeping objects are excluded.
	ListTables(ctx context.Context) ([]string, error)

	// TableExists reports whether a table with the given name exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set, in the
	// engine's declaration order.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}
