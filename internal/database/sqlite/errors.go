package sqlite

import (
	"context"
	"errors"

	"github.com/koustreak/DatView/internal/errs"

	sqlitedrv "modernc.org/sqlite"
)

// SQLite primary result codes (read-relevant only)
// Full list: https://sqlite.org/rescode.html
const (
	sqliteCorrupt = 11 // SQLITE_CORRUPT: the file is malformed
	sqliteNotADB  = 26 // SQLITE_NOTADB: the file is not a database at all
)

// mapError translates modernc.org/sqlite errors into *errs.Error.
// File-level damage always maps to an invalid-database error; everything
// else keeps the kind the call site expected.
func mapError(err error, fallback errs.ErrKind, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var serr *sqlitedrv.Error
	if errors.As(err, &serr) {
		switch serr.Code() & 0xff { // extended codes carry the primary code in the low byte
		case sqliteNotADB, sqliteCorrupt:
			return errs.Wrap(errs.ErrKindInvalidDatabase, msg, err)
		}
	}

	return errs.Wrap(fallback, msg, err)
}
