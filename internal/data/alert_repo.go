package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/LukeRoberson/Logging-Service/internal/data/database"
	"github.com/LukeRoberson/Logging-Service/internal/data/pgxutil"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
)

// AlertRepo provides database operations for the live-alert store.
type AlertRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAlertRepo creates a new AlertRepo instance with the given database connection.
func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// alertColumns defines the column list for alert SELECT queries to ensure consistent field mapping.
const alertColumns = `id, source, log_group, category, alert, severity, logged_at, message, is_system`

// getAlertColumnList returns a slice of alert column names for use with the query builder.
func getAlertColumnList() []string {
	return []string{
		"id", "source", "log_group", "category", "alert", "severity",
		"logged_at", "message", "is_system",
	}
}

// Insert persists one alert record and returns it with its assigned id.
func (r *AlertRepo) Insert(
	ctx context.Context,
	record model.AlertRecord,
) (*model.AlertRecord, error) {
	loggedAt := record.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = r.timeProvider.Now()
	}

	query := `
		INSERT INTO live_alerts (source, log_group, category, alert, severity, logged_at, message, is_system)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + alertColumns

	var inserted model.AlertRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			record.Source, record.Group, record.Category, record.Alert,
			record.Severity, loggedAt, record.Message, record.IsSystem,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		inserted, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AlertRecord])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	return &inserted, nil
}

// buildQueryConditions translates the filter set into query builder conditions.
// The same set backs both the count and the page select.
func buildQueryConditions(q model.AlertQuery) []database.Condition {
	var conds []database.Condition

	if q.Search != "" {
		pattern := "%" + escapeLikePattern(q.Search) + "%"
		conds = append(conds,
			database.WhereRawCond("(message ILIKE $1 OR alert ILIKE $1)", pattern))
	}
	if q.SystemOnly {
		conds = append(conds, database.WhereRawCond("is_system = TRUE"))
	}
	if q.Source != "" {
		conds = append(conds, database.WhereCond("source", database.Equal, q.Source))
	}
	if q.Group != "" {
		conds = append(conds, database.WhereCond("log_group", database.Equal, q.Group))
	}
	if q.Category != "" {
		conds = append(conds, database.WhereCond("category", database.Equal, q.Category))
	}
	if q.AlertType != "" {
		conds = append(conds, database.WhereCond("alert", database.Equal, q.AlertType))
	}
	if q.Severity != "" {
		conds = append(conds, database.WhereCond("severity", database.Equal, q.Severity))
	}

	return conds
}

// escapeLikePattern escapes LIKE metacharacters so a search term matches
// literally when wrapped in an ILIKE pattern.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Query returns one page of alerts matching the filters, newest first, along
// with the total match count before paging. Count and page run in one
// repeatable read transaction so the totals describe the same snapshot as
// the rows.
func (r *AlertRepo) Query(ctx context.Context, q model.AlertQuery) (*model.AlertPage, error) {
	q.Normalize(model.DefaultPageSize)
	conds := buildQueryConditions(q)

	countQuery, countArgs := database.BuildListQuery(database.NewListQueryOptions("live_alerts",
		database.WithCountOnly(),
		database.WithConditions(conds...),
	))

	pageQuery, pageArgs := database.BuildListQuery(database.NewListQueryOptions("live_alerts",
		database.WithColumns(getAlertColumnList()...),
		database.WithConditions(conds...),
		database.WithOrderBy("logged_at", "DESC"),
		database.WithLimit(q.PageSize),
		database.WithOffset(q.Offset()),
	))

	var total int
	var alerts []*model.AlertRecord
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
		Fn: func(tx pgx.Tx) error {
			if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
				return fmt.Errorf("count alerts: %w", err)
			}

			rows, err := tx.Query(ctx, pageQuery, pageArgs...)
			if err != nil {
				return err
			}
			defer rows.Close()

			alerts, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.AlertRecord])
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}

	if alerts == nil {
		alerts = []*model.AlertRecord{}
	}

	return &model.AlertPage{
		Alerts:     alerts,
		TotalLogs:  total,
		TotalPages: model.PageCount(total, q.PageSize),
	}, nil
}

// GetByID retrieves an alert by its id.
func (r *AlertRepo) GetByID(ctx context.Context, id int64) (*model.AlertRecord, error) {
	query := `SELECT ` + alertColumns + ` FROM live_alerts WHERE id = $1`

	var alert model.AlertRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		alert, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AlertRecord])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("get alert by id: %w", err)
	}

	return &alert, nil
}

// Stats retrieves severity counts over every stored alert.
func (r *AlertRepo) Stats(ctx context.Context) (*model.AlertStats, error) {
	query := `SELECT
		COUNT(*) as total,
		COUNT(CASE WHEN severity = 'critical' THEN 1 END) as critical,
		COUNT(CASE WHEN severity = 'error' THEN 1 END) as error,
		COUNT(CASE WHEN severity = 'warning' THEN 1 END) as warning,
		COUNT(CASE WHEN severity = 'info' THEN 1 END) as info,
		COUNT(CASE WHEN is_system THEN 1 END) as system
	FROM live_alerts`

	var stats model.AlertStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Critical, &stats.Error,
		&stats.Warning, &stats.Info, &stats.System,
	)
	if err != nil {
		return nil, fmt.Errorf("get alert stats: %w", err)
	}

	return &stats, nil
}
