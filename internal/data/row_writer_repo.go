package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/LukeRoberson/Logging-Service/internal/data/pgxutil"
)

// RowWriterRepo inserts event-supplied rows into arbitrary tables. It backs
// the sql destination, where producers name the target table themselves.
type RowWriterRepo struct {
	DB *sql.DB
}

// NewRowWriterRepo creates a new RowWriterRepo with the given database connection.
func NewRowWriterRepo(db *sql.DB) *RowWriterRepo {
	return &RowWriterRepo{DB: db}
}

// InsertRow inserts one row into the named table. Table and column names come
// from the event payload, so both are sanitized as identifiers; values are
// always bound as parameters. Columns are ordered deterministically.
func (r *RowWriterRepo) InsertRow(ctx context.Context, table string, fields map[string]any) error {
	if table == "" {
		return errors.New("table name is required")
	}
	if len(fields) == 0 {
		return errors.New("at least one field is required")
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		_, execErr := pgxConn.Exec(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("insert row into %s: %w", table, mapPgError(err))
	}

	return nil
}
