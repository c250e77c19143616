package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/babbaginator/pyDatasetGen/internal/schema"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table WriteSQLite fills when none is named.
const DefaultTable = "dataset"

// WriteSQLite stores ds in table inside the SQLite database at path,
// replacing any table of that name. Every column is TEXT and all rows go in
// one transaction.
func WriteSQLite(ctx context.Context, path, table string, ds schema.Dataset) error {
	if table == "" {
		table = DefaultTable
	}
	if len(ds.Columns) == 0 {
		return errors.New("write sqlite: dataset has no columns")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("write sqlite: open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	cols := make([]string, len(ds.Columns))
	marks := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}
	name := quoteIdent(table)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("write sqlite: drop %s: %w", table, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s TEXT)", name, strings.Join(cols, " TEXT, "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("write sqlite: create %s: %w", table, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("write sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(ds.Columns))
	for i, row := range ds.Rows() {
		for j := range args {
			args[j] = ""
			if j < len(row) {
				args[j] = row[j]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("write sqlite: row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write sqlite: commit: %w", err)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
