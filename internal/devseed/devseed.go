// Package devseed populates the live-alert store with sample records for
// local development. It is only invoked when the service runs in dev mode.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/LukeRoberson/Logging-Service/internal/data"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
)

// seedAlert describes one sample record relative to the seeding time.
type seedAlert struct {
	source   string
	group    string
	category string
	alert    string
	severity model.Severity
	age      time.Duration
	message  string
	isSystem bool
}

var sampleAlerts = []seedAlert{
	{
		source:   "web-plugin",
		group:    "service",
		category: "security",
		alert:    "login-failed",
		severity: model.SeverityWarning,
		age:      45 * time.Minute,
		message:  "failed login for admin from 10.1.4.7",
	},
	{
		source:   "dhcp-server",
		group:    "infrastructure",
		category: "network",
		alert:    "pool-exhausted",
		severity: model.SeverityError,
		age:      30 * time.Minute,
		message:  "address pool vlan40 has no free leases",
	},
	{
		source:   "backup-runner",
		group:    "operations",
		category: "storage",
		alert:    "backup-complete",
		severity: model.SeverityInfo,
		age:      10 * time.Minute,
		message:  "nightly backup finished in 14m32s",
	},
	{
		source:   "logging-service",
		group:    "service",
		category: "internal",
		alert:    "sink-degraded",
		severity: model.SeverityCritical,
		age:      2 * time.Minute,
		message:  "teams webhook unreachable, retries exhausted",
		isSystem: true,
	},
}

// Run inserts the sample alerts. Existing rows are left alone, so repeated
// runs keep appending; dev databases are expected to be disposable.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	repo := data.NewAlertRepo(db)
	now := time.Now().UTC()

	for _, s := range sampleAlerts {
		record := model.AlertRecord{
			Source:   s.source,
			Group:    s.group,
			Category: s.category,
			Alert:    s.alert,
			Severity: s.severity,
			LoggedAt: now.Add(-s.age),
			Message:  s.message,
			IsSystem: s.isSystem,
		}
		if _, err := repo.Insert(ctx, record); err != nil {
			return fmt.Errorf("seed alert %q: %w", s.alert, err)
		}
	}

	logger.InfoContext(ctx, "development seed completed", "alerts", len(sampleAlerts))
	return nil
}
