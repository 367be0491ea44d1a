// Package sink provides the per-destination delivery adapters. Each adapter
// owns exactly one destination and reports failures to the router without
// affecting its siblings.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/LukeRoberson/Logging-Service/internal/core"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

// WebSink stores events in the live-alert store for interactive retrieval.
type WebSink struct {
	repo core.AlertRepository
	// systemSource marks records produced by the service itself so the UI
	// can separate operational noise from tenant events.
	systemSource string
}

// NewWebSink creates a WebSink backed by the given repository.
func NewWebSink(repo core.AlertRepository, systemSource string) *WebSink {
	return &WebSink{repo: repo, systemSource: systemSource}
}

func (s *WebSink) Destination() model.Destination {
	return model.DestinationWeb
}

func (s *WebSink) Deliver(ctx context.Context, event *model.LogEvent) error {
	record := model.NewAlertRecord(event, s.systemSource != "" && event.Source == s.systemSource)
	if _, err := s.repo.Insert(ctx, record); err != nil {
		return apperrors.Storage(err, "store live alert")
	}
	return nil
}

// TeamsSink posts the event's chat record to Teams.
type TeamsSink struct {
	notifier core.TeamsNotifier
}

// NewTeamsSink creates a TeamsSink backed by the given notifier.
func NewTeamsSink(notifier core.TeamsNotifier) *TeamsSink {
	return &TeamsSink{notifier: notifier}
}

func (s *TeamsSink) Destination() model.Destination {
	return model.DestinationTeams
}

func (s *TeamsSink) Deliver(ctx context.Context, event *model.LogEvent) error {
	// Validation guarantees the teams record is present when this
	// destination is requested.
	if err := s.notifier.Send(ctx, event.Teams.Destination, event.Teams.Message); err != nil {
		return apperrors.Delivery(err, "teams")
	}
	return nil
}

// SQLSink inserts the event's row record into the producer-named table.
type SQLSink struct {
	writer core.RowWriter
}

// NewSQLSink creates a SQLSink backed by the given row writer.
func NewSQLSink(writer core.RowWriter) *SQLSink {
	return &SQLSink{writer: writer}
}

func (s *SQLSink) Destination() model.Destination {
	return model.DestinationSQL
}

func (s *SQLSink) Deliver(ctx context.Context, event *model.LogEvent) error {
	if err := s.writer.InsertRow(ctx, event.SQL.Destination, event.SQL.Fields); err != nil {
		return apperrors.Delivery(err, "sql")
	}
	return nil
}

// SyslogSink serializes the log record to a single line and ships it to the
// collector.
type SyslogSink struct {
	writer core.SyslogWriter
}

// NewSyslogSink creates a SyslogSink backed by the given writer.
func NewSyslogSink(writer core.SyslogWriter) *SyslogSink {
	return &SyslogSink{writer: writer}
}

func (s *SyslogSink) Destination() model.Destination {
	return model.DestinationSyslog
}

func (s *SyslogSink) Deliver(ctx context.Context, event *model.LogEvent) error {
	if err := s.writer.WriteLine(ctx, FormatLine(event)); err != nil {
		return apperrors.Delivery(err, "syslog")
	}
	return nil
}

// FormatLine renders an event as a single syslog-friendly line.
func FormatLine(event *model.LogEvent) string {
	log := event.Log
	return fmt.Sprintf("%s %s %s.%s %s %s: %s",
		log.Timestamp.UTC().Format(time.RFC3339),
		event.Source,
		log.Group,
		log.Category,
		log.Severity,
		log.Alert,
		log.Message,
	)
}
