package model

import (
	"strings"
	"time"
)

// AlertRecord is the persisted projection of a LogEvent destined for the web
// sink. Records are immutable once written: inserted and read, never updated.
type AlertRecord struct {
	ID       int64     `json:"id"        db:"id"`
	Source   string    `json:"source"    db:"source"`
	Group    string    `json:"group"     db:"log_group"`
	Category string    `json:"category"  db:"category"`
	Alert    string    `json:"alert"     db:"alert"`
	Severity Severity  `json:"severity"  db:"severity"`
	LoggedAt time.Time `json:"timestamp" db:"logged_at"`
	Message  string    `json:"message"   db:"message"`
	IsSystem bool      `json:"is_system" db:"is_system"`
}

// NewAlertRecord projects a validated event onto an alert record. The id is
// assigned at insert. isSystem marks events produced by the service itself.
func NewAlertRecord(event *LogEvent, isSystem bool) AlertRecord {
	return AlertRecord{
		Source:   event.Source,
		Group:    event.Log.Group,
		Category: event.Log.Category,
		Alert:    event.Log.Alert,
		Severity: event.Log.Severity,
		LoggedAt: event.Log.Timestamp,
		Message:  event.Log.Message,
		IsSystem: isSystem,
	}
}

// DefaultPageSize applies when a query does not set a page size.
const DefaultPageSize = 200

// AlertQuery is a filter+pagination request over alert records. All filters
// are AND-combined; a zero value means no constraint on that field.
type AlertQuery struct {
	// Search is a case-insensitive substring match over message and alert.
	Search     string
	SystemOnly bool
	Source     string
	Group      string
	Category   string
	AlertType  string
	Severity   string

	// PageSize must be positive; PageNumber is 1-based, page 1 is the newest.
	PageSize   int
	PageNumber int
}

// Normalize trims filters and applies pagination defaults.
func (q *AlertQuery) Normalize(defaultPageSize int) {
	q.Search = strings.TrimSpace(q.Search)
	q.Source = strings.TrimSpace(q.Source)
	q.Group = strings.TrimSpace(q.Group)
	q.Category = strings.TrimSpace(q.Category)
	q.AlertType = strings.TrimSpace(q.AlertType)
	q.Severity = strings.ToLower(strings.TrimSpace(q.Severity))

	if q.PageSize <= 0 {
		if defaultPageSize > 0 {
			q.PageSize = defaultPageSize
		} else {
			q.PageSize = DefaultPageSize
		}
	}
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
}

// Offset returns the row offset for the query's page.
func (q *AlertQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// AlertPage is one page of a filtered alert listing. TotalLogs counts every
// record matching the filters before paging; a page number past the end
// yields an empty Alerts slice with the totals intact.
type AlertPage struct {
	Alerts     []*AlertRecord
	TotalLogs  int
	TotalPages int
}

// PageCount computes ceil(total/pageSize) for pagination metadata.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// AlertStats summarizes stored alerts by severity.
type AlertStats struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Error    int `json:"error"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	System   int `json:"system"`
}
