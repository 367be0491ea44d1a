// Package core defines the ports between the service layer and the adapters
// that back it. Services depend on these interfaces, never on concrete
// implementations.
package core

import (
	"context"
	"time"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
)

// AlertRepository defines the interface for live-alert data operations.
type AlertRepository interface {
	// Insert persists one alert record and returns it with its assigned id.
	Insert(ctx context.Context, record model.AlertRecord) (*model.AlertRecord, error)
	// Query returns one page of alerts matching the filters, newest first,
	// along with the total match count before paging.
	Query(ctx context.Context, q model.AlertQuery) (*model.AlertPage, error)
	// Stats returns severity counts over every stored alert.
	Stats(ctx context.Context) (*model.AlertStats, error)
}

// RowWriter defines the interface for inserting event-supplied rows into an
// arbitrary database table. It backs the sql destination.
type RowWriter interface {
	InsertRow(ctx context.Context, table string, fields map[string]any) error
}

// TeamsNotifier defines the interface for posting chat messages.
type TeamsNotifier interface {
	Send(ctx context.Context, channel, message string) error
}

// SyslogWriter defines the interface for emitting syslog lines to a collector.
type SyslogWriter interface {
	WriteLine(ctx context.Context, line string) error
}

// SinkAdapter delivers a validated event to one destination. Adapters are
// isolated: a failure is returned to the router, never propagated to
// sibling adapters.
type SinkAdapter interface {
	// Destination reports which destination this adapter serves.
	Destination() model.Destination
	// Deliver sends the event to the adapter's backend.
	Deliver(ctx context.Context, event *model.LogEvent) error
}

// CacheRepository defines the interface for caching operations. The port is
// deliberately narrow; cache liveness is verified at connect time, not here.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)
}
