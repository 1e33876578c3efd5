// Command datview opens a SQLite database file of unknown schema, lists
// its tables, and exports a selected table to delimited text.
//
// Usage:
//
//	datview [-config file.yaml] tables <db>
//	datview [-config file.yaml] show   <db> <table>
//	datview [-config file.yaml] export [-y] <db> <table> <out.csv>
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/koustreak/DatView/internal/config"
	"github.com/koustreak/DatView/internal/dataset"
	"github.com/koustreak/DatView/internal/errs"
	"github.com/koustreak/DatView/internal/logger"
	"github.com/koustreak/DatView/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "datview:", err)
		os.Exit(2)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	logger.SetGlobal(log)

	sess := session.New(
		session.WithLogger(log),
		session.WithDelimiter(cfg.DelimiterRune()),
	)
	ctx := context.Background()

	switch args[0] {
	case "tables":
		err = runTables(ctx, sess, args[1:])
	case "show":
		err = runShow(ctx, sess, cfg, args[1:])
	case "export":
		err = runExport(ctx, sess, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "datview: unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}

	if err != nil {
		renderError(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `datview — browse and export SQLite database files

Usage:
  datview [-config file.yaml] tables <db>
  datview [-config file.yaml] show   <db> <table>
  datview [-config file.yaml] export [-y] <db> <table> <out.csv>`)
}

// runTables imports the database and lists each table with its shape.
func runTables(ctx context.Context, sess *session.Session, args []string) error {
	if len(args) != 1 {
		return errs.New(errs.ErrKindInvalidInput, "usage: datview tables <db>")
	}
	dbPath := args[0]

	coll, err := sess.Import(ctx, dbPath)
	if err != nil {
		return err
	}

	if info, statErr := os.Stat(dbPath); statErr == nil {
		fmt.Printf("%s (%s)\n", dbPath, humanize.Bytes(uint64(info.Size())))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS\tCOLUMNS")
	for _, name := range coll.Names() {
		t := coll.Get(name)
		fmt.Fprintf(tw, "%s\t%d\t%d\n", name, t.NumRows(), t.NumColumns())
	}
	return tw.Flush()
}

// runShow imports the database and prints one table to stdout.
func runShow(ctx context.Context, sess *session.Session, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errs.New(errs.ErrKindInvalidInput, "usage: datview show <db> <table>")
	}

	t, err := importTable(ctx, sess, args[0], args[1])
	if err != nil {
		return err
	}

	sep := cfg.Export.Delimiter
	fmt.Println(strings.Join(t.Header, sep))
	for _, row := range t.Rows {
		fmt.Println(strings.Join(dataset.RowText(row), sep))
	}
	return nil
}

// runExport imports the database and writes one table to a file,
// confirming before replacing an existing file unless -y is given.
func runExport(ctx context.Context, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	yes := fs.Bool("y", false, "overwrite an existing output file without asking")
	if err := fs.Parse(args); err != nil {
		return errs.Wrap(errs.ErrKindInvalidInput, "bad export flags", err)
	}
	rest := fs.Args()
	if len(rest) != 3 {
		return errs.New(errs.ErrKindInvalidInput, "usage: datview export [-y] <db> <table> <out.csv>")
	}
	dbPath, tableName, outPath := rest[0], rest[1], rest[2]

	t, err := importTable(ctx, sess, dbPath, tableName)
	if err != nil {
		return err
	}

	if !*yes {
		if _, statErr := os.Stat(outPath); statErr == nil {
			if !confirm(fmt.Sprintf("%s exists — overwrite?", outPath)) {
				fmt.Fprintln(os.Stderr, "export cancelled")
				return nil
			}
		}
	}

	return sess.Export(t, outPath)
}

// importTable loads the whole database and picks one table out of it.
func importTable(ctx context.Context, sess *session.Session, dbPath, tableName string) (*dataset.Table, error) {
	coll, err := sess.Import(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	t := coll.Get(tableName)
	if t == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, fmt.Sprintf(
			"no table %q in %s (have: %s)",
			tableName, dbPath, strings.Join(coll.Names(), ", ")))
	}
	return t, nil
}

// confirm asks a yes/no question on the terminal.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// renderError explains a failure in terms of the error taxonomy.
func renderError(err error) {
	switch {
	case errs.IsInvalidDatabase(err):
		fmt.Fprintln(os.Stderr, "datview: not a usable database:", err)
	case errs.IsTableRead(err):
		fmt.Fprintln(os.Stderr, "datview: table could not be read:", err)
	case errs.IsIO(err):
		fmt.Fprintln(os.Stderr, "datview: export failed:", err)
	default:
		fmt.Fprintln(os.Stderr, "datview:", err)
	}
}
