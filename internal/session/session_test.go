package session_test

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/DatView/internal/dataset"
	"github.com/koustreak/DatView/internal/errs"
	"github.com/koustreak/DatView/internal/session"

	_ "modernc.org/sqlite"
)

// createDB builds a fixture database file with the given statements.
func createDB(t *testing.T, stmts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "statement: %s", stmt)
	}
	return path
}

func readingsDB(t *testing.T) string {
	t.Helper()
	return createDB(t,
		`CREATE TABLE readings (id INTEGER, ts TEXT, value REAL)`,
		`INSERT INTO readings VALUES (1, '2023-01-01T00:00', 21.5)`,
		`INSERT INTO readings VALUES (2, '2023-01-01T00:05', NULL)`,
	)
}

func TestImportReadingsScenario(t *testing.T) {
	sess := session.New()

	coll, err := sess.Import(context.Background(), readingsDB(t))
	require.NoError(t, err)

	require.Equal(t, []string{"readings"}, coll.Names())
	tbl := coll.Get("readings")

	assert.Equal(t, []string{"id", "ts", "value"}, tbl.Header)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []any{int64(1), "2023-01-01T00:00", 21.5}, tbl.Rows[0])
	assert.Equal(t, []any{int64(2), "2023-01-01T00:05", nil}, tbl.Rows[1])

	assert.Same(t, coll, sess.Current())
}

func TestExportReadingsScenario(t *testing.T) {
	sess := session.New()

	coll, err := sess.Import(context.Background(), readingsDB(t))
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, sess.Export(coll.Get("readings"), outPath))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	want := "id,ts,value\n" +
		"1,2023-01-01T00:00,21.5\n" +
		"2,2023-01-01T00:05,\n"
	assert.Equal(t, want, string(raw))
}

func TestImportCoversWholeCatalog(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE data (time TEXT)`,
		`CREATE TABLE sensor_data (co2_ppm INTEGER)`,
		`CREATE VIEW recent AS SELECT * FROM data`,
	)
	sess := session.New()

	coll, err := sess.Import(context.Background(), path)
	require.NoError(t, err)

	// Exactly the table-kind catalog objects: no extras, no omissions.
	assert.ElementsMatch(t, []string{"data", "sensor_data"}, coll.Names())
}

func TestImportFailureKeepsPreviousCollection(t *testing.T) {
	sess := session.New()
	ctx := context.Background()

	coll, err := sess.Import(ctx, readingsDB(t))
	require.NoError(t, err)

	// A zero-byte file must fail as an invalid database...
	emptyPath := filepath.Join(t.TempDir(), "zero.db")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))

	_, err = sess.Import(ctx, emptyPath)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidDatabase(err))

	// ...and must not touch the previously loaded collection.
	assert.Same(t, coll, sess.Current())
}

func TestImportReplacesCollectionWholesale(t *testing.T) {
	sess := session.New()
	ctx := context.Background()

	first, err := sess.Import(ctx, readingsDB(t))
	require.NoError(t, err)

	second, err := sess.Import(ctx, createDB(t, `CREATE TABLE other (x INTEGER)`))
	require.NoError(t, err)

	assert.Same(t, second, sess.Current())
	assert.NotSame(t, first, second)
	assert.Nil(t, second.Get("readings"), "no merge with the previous collection")
}

func TestImportIdempotence(t *testing.T) {
	path := readingsDB(t)
	sess := session.New()
	ctx := context.Background()

	a, err := sess.Import(ctx, path)
	require.NoError(t, err)
	b, err := sess.Import(ctx, path)
	require.NoError(t, err)

	require.Equal(t, a.Names(), b.Names())
	for _, name := range a.Names() {
		assert.Equal(t, a.Get(name).Header, b.Get(name).Header)
		// Plain tables scan in rowid order, so full equality holds here;
		// in general only the row multiset is guaranteed.
		assert.ElementsMatch(t, a.Get(name).Rows, b.Get(name).Rows)
	}
}

func TestCurrentIsNilBeforeImport(t *testing.T) {
	assert.Nil(t, session.New().Current())
}

func TestExportNilTable(t *testing.T) {
	err := session.New().Export(nil, filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

// TestRoundTrip exports a table, loads the CSV into a fresh all-text
// database table, and re-imports it. Everything except type fidelity
// must survive.
func TestRoundTrip(t *testing.T) {
	sess := session.New()
	ctx := context.Background()

	orig, err := sess.Import(ctx, readingsDB(t))
	require.NoError(t, err)
	origTable := orig.Get("readings")

	outPath := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, sess.Export(origTable, outPath))

	// Re-import the CSV as a single-table database with text columns.
	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	freshPath := filepath.Join(t.TempDir(), "fresh.db")
	fresh, err := sql.Open("sqlite", freshPath)
	require.NoError(t, err)
	defer fresh.Close()

	header := records[0]
	cols := make([]string, len(header))
	marks := make([]string, len(header))
	for i, name := range header {
		cols[i] = fmt.Sprintf("%q TEXT", name)
		marks[i] = "?"
	}
	_, err = fresh.Exec(fmt.Sprintf("CREATE TABLE reimported (%s)", strings.Join(cols, ", ")))
	require.NoError(t, err)

	insert := fmt.Sprintf("INSERT INTO reimported VALUES (%s)", strings.Join(marks, ", "))
	for _, record := range records[1:] {
		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		_, err = fresh.Exec(insert, args...)
		require.NoError(t, err)
	}
	require.NoError(t, fresh.Close())

	reimported, err := session.New().Import(ctx, freshPath)
	require.NoError(t, err)
	got := reimported.Get("reimported")

	assert.Equal(t, origTable.Header, got.Header)
	require.Equal(t, origTable.NumRows(), got.NumRows())
	for i, row := range origTable.Rows {
		assert.Equal(t, dataset.RowText(row), dataset.RowText(got.Rows[i]),
			"row %d differs after text coercion", i)
	}
}
