// Package export serialises a dataset.Table to a delimited text file.
// It is the exact inverse of materialisation, restricted to text: header
// first, then every row in stored order, with RFC 4180 quoting.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/koustreak/DatView/internal/dataset"
	"github.com/koustreak/DatView/internal/errs"
)

// Writer serialises tables with a fixed delimiter.
// The zero value is not usable; construct with NewWriter.
type Writer struct {
	delimiter rune
}

// NewWriter returns a Writer using the given field delimiter.
// A zero delimiter means comma.
func NewWriter(delimiter rune) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter}
}

// WriteFile writes t to path, replacing any existing file. Confirming
// the overwrite with the user is the caller's responsibility.
//
// The file is written to a temporary name in the destination directory
// and renamed into place only after a successful flush, so a failed
// export never leaves a truncated file at path. All failures are
// reported as IO errors.
func (w *Writer) WriteFile(t *dataset.Table, path string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errs.Wrap(errs.ErrKindIO,
			fmt.Sprintf("cannot create export file in %q", dir), err)
	}
	tmpName := tmp.Name()

	if err := w.writeTable(tmp, t); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrap(errs.ErrKindIO, "closing export file failed", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrap(errs.ErrKindIO,
			fmt.Sprintf("cannot move export into place at %q", path), err)
	}

	return nil
}

// writeTable emits the header and every row, converting each field with
// dataset.FieldText. encoding/csv handles quoting: fields containing the
// delimiter, a quote, or a line break are quoted, with embedded quotes
// doubled.
func (w *Writer) writeTable(f *os.File, t *dataset.Table) error {
	cw := csv.NewWriter(f)
	cw.Comma = w.delimiter

	if err := cw.Write(t.Header); err != nil {
		return errs.Wrap(errs.ErrKindIO, "writing header row failed", err)
	}

	for i, row := range t.Rows {
		if err := cw.Write(dataset.RowText(row)); err != nil {
			return errs.Wrap(errs.ErrKindIO,
				fmt.Sprintf("writing row %d failed", i), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errs.Wrap(errs.ErrKindIO, "flushing export failed", err)
	}
	return nil
}
