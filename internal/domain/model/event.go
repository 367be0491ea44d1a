// Package model defines the domain types for the logging service: inbound
// log events, their destinations, and the persisted live-alert projection.
package model

import (
	"strings"
	"time"

	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

// Destination identifies a delivery target for a log event.
type Destination string

const (
	DestinationWeb    Destination = "web"
	DestinationSQL    Destination = "sql"
	DestinationTeams  Destination = "teams"
	DestinationSyslog Destination = "syslog"
)

// Valid returns true if the destination is one of the supported values.
func (d Destination) Valid() bool {
	switch d {
	case DestinationWeb, DestinationSQL, DestinationTeams, DestinationSyslog:
		return true
	default:
		return false
	}
}

// String returns the string representation of the destination.
func (d Destination) String() string {
	return string(d)
}

// DispatchOrder returns every destination in its fixed dispatch priority.
// The order carries no delivery semantics but keeps dispatch deterministic.
func DispatchOrder() []Destination {
	return []Destination{DestinationWeb, DestinationSQL, DestinationTeams, DestinationSyslog}
}

// Severity represents the severity level of a log event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Valid returns true if the severity is one of the supported values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// LogRecord is the mandatory log sub-record carried by every event. The
// web/live-alert path and the audit trail both depend on it, so it is
// required regardless of the requested destinations.
type LogRecord struct {
	Group     string    `json:"group"`
	Category  string    `json:"category"`
	Alert     string    `json:"alert"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// TeamsRecord is the optional chat sub-record, required when the teams
// destination is requested.
type TeamsRecord struct {
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// SQLRecord is the optional database sub-record, required when the sql
// destination is requested. Fields maps column names to values.
type SQLRecord struct {
	Destination string         `json:"destination"`
	Fields      map[string]any `json:"fields"`
}

// LogEvent is the unit of work submitted by a producer. The wire key for the
// destination list is singular, matching the plugin contract.
type LogEvent struct {
	Source       string        `json:"source"`
	Destinations []Destination `json:"destination"`
	Log          *LogRecord    `json:"log"`
	Teams        *TeamsRecord  `json:"teams,omitempty"`
	SQL          *SQLRecord    `json:"sql,omitempty"`
}

// Normalize trims string fields, deduplicates the destination list preserving
// request order, and assigns the receipt time when the event carries no
// timestamp.
func (e *LogEvent) Normalize(receivedAt time.Time) {
	e.Source = strings.TrimSpace(e.Source)

	seen := make(map[Destination]bool, len(e.Destinations))
	deduped := e.Destinations[:0]
	for _, d := range e.Destinations {
		d = Destination(strings.ToLower(strings.TrimSpace(string(d))))
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		deduped = append(deduped, d)
	}
	e.Destinations = deduped

	if e.Log != nil {
		e.Log.Group = strings.TrimSpace(e.Log.Group)
		e.Log.Category = strings.TrimSpace(e.Log.Category)
		e.Log.Alert = strings.TrimSpace(e.Log.Alert)
		e.Log.Severity = Severity(strings.ToLower(strings.TrimSpace(string(e.Log.Severity))))
		if e.Log.Timestamp.IsZero() {
			e.Log.Timestamp = receivedAt
		}
	}
	if e.Teams != nil {
		e.Teams.Destination = strings.TrimSpace(e.Teams.Destination)
	}
	if e.SQL != nil {
		e.SQL.Destination = strings.TrimSpace(e.SQL.Destination)
	}
}

// Validate checks the event against the payload contract. It is pure: no
// side effects, and no sink is touched on failure.
func (e *LogEvent) Validate() error {
	if e.Source == "" {
		return apperrors.MissingField("source")
	}
	if len(e.Destinations) == 0 {
		return apperrors.MissingField("destination")
	}
	if e.Log == nil {
		return apperrors.MissingField("log")
	}

	if err := e.Log.validate(); err != nil {
		return err
	}

	for _, d := range e.Destinations {
		if !d.Valid() {
			return apperrors.UnknownDestination(string(d))
		}
	}

	if e.HasDestination(DestinationTeams) && e.Teams == nil {
		return apperrors.InconsistentPayload("teams",
			"destination teams requested without a teams record")
	}
	if e.HasDestination(DestinationSQL) {
		if e.SQL == nil {
			return apperrors.InconsistentPayload("sql",
				"destination sql requested without a sql record")
		}
		if e.SQL.Destination == "" {
			return apperrors.MissingField("sql.destination")
		}
	}

	return nil
}

// UnusedSubRecords lists sub-records supplied without their matching
// destination. They are ignored at dispatch; the router logs a warning for
// each so producers can spot the mismatch.
func (e *LogEvent) UnusedSubRecords() []string {
	var unused []string
	if e.Teams != nil && !e.HasDestination(DestinationTeams) {
		unused = append(unused, "teams")
	}
	if e.SQL != nil && !e.HasDestination(DestinationSQL) {
		unused = append(unused, "sql")
	}
	return unused
}

func (r *LogRecord) validate() error {
	if r.Group == "" {
		return apperrors.MissingField("log.group")
	}
	if r.Category == "" {
		return apperrors.MissingField("log.category")
	}
	if r.Alert == "" {
		return apperrors.MissingField("log.alert")
	}
	if r.Severity == "" {
		return apperrors.MissingField("log.severity")
	}
	if !r.Severity.Valid() {
		return apperrors.Validationf("log.severity", "invalid severity %q", r.Severity)
	}
	if r.Message == "" {
		return apperrors.MissingField("log.message")
	}
	return nil
}

// HasDestination reports whether the event requests the given destination.
func (e *LogEvent) HasDestination(d Destination) bool {
	for _, have := range e.Destinations {
		if have == d {
			return true
		}
	}
	return false
}
