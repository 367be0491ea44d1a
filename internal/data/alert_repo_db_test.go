package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	"github.com/LukeRoberson/Logging-Service/internal/testutil"
)

func insertTestAlert(t *testing.T, repo *AlertRepo, record model.AlertRecord) *model.AlertRecord {
	t.Helper()
	inserted, err := repo.Insert(context.Background(), record)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.NotZero(t, inserted.ID)
	return inserted
}

func pageIDs(page *model.AlertPage) []int64 {
	ids := make([]int64, 0, len(page.Alerts))
	for _, a := range page.Alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAlertRepo_InsertAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAlertRepo(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record := model.AlertRecord{
		Source:   "web-plugin",
		Group:    "service",
		Category: "security",
		Alert:    "login-failed",
		Severity: model.SeverityWarning,
		LoggedAt: base,
		Message:  "failed login for admin",
	}
	inserted := insertTestAlert(t, repo, record)

	assert.Equal(t, "web-plugin", inserted.Source)
	assert.Equal(t, "service", inserted.Group)
	assert.Equal(t, "security", inserted.Category)
	assert.Equal(t, "login-failed", inserted.Alert)
	assert.Equal(t, model.SeverityWarning, inserted.Severity)
	assert.True(t, inserted.LoggedAt.Equal(base))
	assert.False(t, inserted.IsSystem)

	fetched, err := repo.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, fetched.ID)
	assert.Equal(t, "failed login for admin", fetched.Message)
}

func TestAlertRepo_QueryOrderingAndPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAlertRepo(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	mk := func(alert string, at time.Time) model.AlertRecord {
		return model.AlertRecord{
			Source:   "web-plugin",
			Group:    "service",
			Category: "security",
			Alert:    alert,
			Severity: model.SeverityInfo,
			LoggedAt: at,
			Message:  alert,
		}
	}

	// older and olderTwin share a timestamp; the later insert has the
	// higher id and must sort first within the tie.
	older := insertTestAlert(t, repo, mk("older", base))
	olderTwin := insertTestAlert(t, repo, mk("older-twin", base))
	newest := insertTestAlert(t, repo, mk("newest", base.Add(time.Hour)))

	pageOne, err := repo.Query(ctx, model.AlertQuery{PageSize: 2, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{newest.ID, olderTwin.ID}, pageIDs(pageOne))
	assert.Equal(t, 3, pageOne.TotalLogs)
	assert.Equal(t, 2, pageOne.TotalPages)

	pageTwo, err := repo.Query(ctx, model.AlertQuery{PageSize: 2, PageNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{older.ID}, pageIDs(pageTwo))
	assert.Equal(t, 3, pageTwo.TotalLogs)
	assert.Equal(t, 2, pageTwo.TotalPages)

	// Reads do not change the store: the same query returns the same page.
	again, err := repo.Query(ctx, model.AlertQuery{PageSize: 2, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, pageIDs(pageOne), pageIDs(again))
	assert.Equal(t, pageOne.TotalLogs, again.TotalLogs)
}

func TestAlertRepo_QueryPageBeyondTotalPages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAlertRepo(db)
	ctx := context.Background()

	insertTestAlert(t, repo, model.AlertRecord{
		Source:   "web-plugin",
		Group:    "service",
		Category: "security",
		Alert:    "login-failed",
		Severity: model.SeverityWarning,
		LoggedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Message:  "failed login for admin",
	})

	page, err := repo.Query(ctx, model.AlertQuery{PageSize: 10, PageNumber: 5})
	require.NoError(t, err)
	require.NotNil(t, page.Alerts)
	assert.Empty(t, page.Alerts)
	assert.Equal(t, 1, page.TotalLogs)
	assert.Equal(t, 1, page.TotalPages)
}

func TestAlertRepo_QuerySearchMatchesLiterally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAlertRepo(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	mk := func(alert, message string) model.AlertRecord {
		return model.AlertRecord{
			Source:   "monitor",
			Group:    "infrastructure",
			Category: "capacity",
			Alert:    alert,
			Severity: model.SeverityError,
			LoggedAt: base,
			Message:  message,
		}
	}

	full := insertTestAlert(t, repo, mk("disk-full", "disk usage at 100% on /var"))
	insertTestAlert(t, repo, mk("disk-warn", "disk usage at 1000 blocks on /var"))

	page, err := repo.Query(ctx, model.AlertQuery{Search: "100%", PageSize: 10, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{full.ID}, pageIDs(page))
	assert.Equal(t, 1, page.TotalLogs)
}
