// Package session owns the loaded data for one run of the application.
// It exposes the two operations the presentation layer calls — Import
// and Export — and nothing else. There is no ambient global state: the
// caller creates a Session, hands it paths, and reads results back.
package session

import (
	"context"

	"github.com/koustreak/DatView/internal/database"
	"github.com/koustreak/DatView/internal/database/sqlite"
	"github.com/koustreak/DatView/internal/dataset"
	"github.com/koustreak/DatView/internal/errs"
	"github.com/koustreak/DatView/internal/export"
	"github.com/koustreak/DatView/internal/logger"
)

// Session holds the collection produced by the most recent successful
// import. Both operations are synchronous and block until done; a
// Session is not meant for concurrent use.
type Session struct {
	log     *logger.Logger
	writer  *export.Writer
	current *dataset.Collection
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Defaults to a discardless default logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithDelimiter sets the export field delimiter. Defaults to comma.
func WithDelimiter(d rune) Option {
	return func(s *Session) { s.writer = export.NewWriter(d) }
}

// New creates an empty session. Current() returns nil until the first
// successful Import.
func New(opts ...Option) *Session {
	s := &Session{
		log:    logger.New(nil),
		writer: export.NewWriter(','),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import opens the database file at path, materialises every table in
// its catalog, and returns the new collection. The database handle is
// held only for the duration of the call and released on every exit
// path.
//
// On success the session's collection is replaced in full; on any
// failure it is left untouched, so the caller's previously loaded data
// survives a bad import. Tables are read one at a time — the collection
// has no internal locking and is never observed half-built.
func (s *Session) Import(ctx context.Context, path string) (*dataset.Collection, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables, err := db.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	coll := dataset.NewCollection()
	for _, name := range tables {
		t, err := database.Materialize(ctx, db, name)
		if err != nil {
			return nil, err
		}
		if err := coll.Add(t); err != nil {
			return nil, err
		}
		s.log.With().
			Str("table", name).
			Int("rows", t.NumRows()).
			Int("columns", t.NumColumns()).
			Logger().
			Debug("table materialised")
	}

	s.current = coll
	s.log.Infof("imported %d table(s) from %s", coll.Len(), path)
	return coll, nil
}

// Export writes one table dataset to path as delimited text, replacing
// any existing file. The table does not need to belong to the current
// collection.
func (s *Session) Export(t *dataset.Table, path string) error {
	if t == nil {
		return errs.New(errs.ErrKindInvalidInput, "export: nil table")
	}
	if err := s.writer.WriteFile(t, path); err != nil {
		return err
	}
	s.log.Infof("exported table %q (%d rows) to %s", t.Name, t.NumRows(), path)
	return nil
}

// Current returns the collection from the most recent successful import,
// or nil if nothing has been imported yet. The collection is read-only
// shared state; a later Import replaces it wholesale rather than
// mutating it.
func (s *Session) Current() *dataset.Collection {
	return s.current
}
