package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/DatView/internal/dataset"
	"github.com/koustreak/DatView/internal/errs"
)

// Materialize performs an unfiltered, unordered full-table scan of the
// named table and returns its complete contents as a dataset.Table.
//
// The header comes from the result set's own column descriptors — not a
// separate schema lookup — so it is always consistent with the row
// tuples of the same query. Row order is whatever the engine's scan
// yields; no ORDER BY is imposed. Field values keep their native driver
// types.
//
// Each call re-reads from the handle; nothing is cached.
func Materialize(ctx context.Context, db DB, table string) (*dataset.Table, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindTableRead,
			fmt.Sprintf("full-table scan of %q failed", table), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindTableRead,
			fmt.Sprintf("reading column names of %q failed", table), err)
	}

	t := &dataset.Table{
		Name:   table,
		Header: columns,
		Rows:   make([][]any, 0),
	}

	for rows.Next() {
		// Allocate scan targets as *any so the driver can write any type.
		dest := make([]any, len(columns))
		destPtrs := make([]any, len(columns))
		for i := range dest {
			destPtrs[i] = &dest[i]
		}

		if err := rows.Scan(destPtrs...); err != nil {
			return nil, errs.Wrap(errs.ErrKindTableRead,
				fmt.Sprintf("scanning a row of %q failed", table), err)
		}
		if err := t.AppendRow(dest); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindTableRead,
			fmt.Sprintf("iterating rows of %q failed", table), err)
	}

	return t, nil
}

// quoteIdent wraps a SQL identifier in double-quotes (ANSI standard).
// This safely handles reserved words, mixed-case names, and names
// containing quotes or delimiter characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
