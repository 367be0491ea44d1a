// Package service implements the business logic for event routing and the
// live-alert store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LukeRoberson/Logging-Service/internal/core"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
	"github.com/LukeRoberson/Logging-Service/internal/observability/statsd"
)

// RouterService validates inbound events and fans them out to every
// requested destination. Destinations are isolated from each other: one
// failing sink never blocks or cancels a sibling.
type RouterService struct {
	resolver *SinkResolver
	metrics  statsd.Sink
	logger   *slog.Logger
	now      func() time.Time
}

// RouterServiceOptions configures the router service.
type RouterServiceOptions struct {
	Resolver *SinkResolver
	Metrics  statsd.Sink
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewRouterService creates a new router service.
func NewRouterService(opts RouterServiceOptions) *RouterService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &RouterService{
		resolver: opts.Resolver,
		metrics:  opts.Metrics,
		logger:   logger,
		now:      now,
	}
}

var errRouterEventRequired = errors.New("router: event is required")

// Handle normalizes and validates one event, resolves its destinations, and
// dispatches to each resolved adapter concurrently. Validation and
// resolution fail the whole event before any sink is touched; delivery
// failures are captured per destination.
func (s *RouterService) Handle(ctx context.Context, event *model.LogEvent) model.DispatchOutcome {
	started := s.now()

	if event == nil {
		return model.DispatchOutcome{Overall: model.OverallError, Err: errRouterEventRequired}
	}

	event.Normalize(started)
	if err := event.Validate(); err != nil {
		s.count("events.rejected", map[string]string{"reason": string(apperrors.GetCode(err))})
		s.logger.InfoContext(ctx, "event rejected",
			"source", event.Source,
			"error", err)
		return model.DispatchOutcome{Overall: model.OverallError, Err: err}
	}

	for _, field := range event.UnusedSubRecords() {
		s.logger.WarnContext(ctx, "sub-record ignored",
			"source", event.Source,
			"field", field,
			"destinations", event.Destinations)
	}

	adapters, err := s.resolver.ResolveAll(event.Destinations)
	if err != nil {
		s.count("events.unresolved", nil)
		s.logger.ErrorContext(ctx, "destination resolution failed",
			"source", event.Source,
			"destinations", event.Destinations,
			"error", err)
		return model.DispatchOutcome{Overall: model.OverallError, Err: err}
	}

	results := s.dispatch(ctx, event, adapters)
	outcome := summarize(results)

	failed := outcome.FailedDestinations()
	if len(failed) > 0 {
		s.logger.WarnContext(ctx, "event partially delivered",
			"source", event.Source,
			"destinations", event.Destinations,
			"failed", failed)
	} else {
		s.logger.InfoContext(ctx, "event dispatched",
			"source", event.Source,
			"destinations", event.Destinations)
	}

	s.timing("dispatch.duration", s.now().Sub(started))
	return outcome
}

// dispatch delivers the event to every adapter concurrently and collects one
// result per destination. Errors are captured, never returned through the
// group, so a failing adapter cannot cancel its siblings.
func (s *RouterService) dispatch(
	ctx context.Context,
	event *model.LogEvent,
	adapters []core.SinkAdapter,
) map[model.Destination]model.DeliveryResult {
	type delivery struct {
		dest model.Destination
		err  error
	}

	deliveries := make([]delivery, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		g.Go(func() error {
			deliveries[i] = delivery{
				dest: adapter.Destination(),
				err:  adapter.Deliver(gctx, event),
			}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	results := make(map[model.Destination]model.DeliveryResult, len(deliveries))
	for _, d := range deliveries {
		if d.err != nil {
			s.count("dispatch.failure", map[string]string{"destination": d.dest.String()})
			s.logger.ErrorContext(ctx, "delivery failed",
				"source", event.Source,
				"destination", d.dest,
				"error", d.err)
			results[d.dest] = model.DeliveryResult{Delivered: false, Error: d.err.Error()}
			continue
		}
		s.count("dispatch.success", map[string]string{"destination": d.dest.String()})
		results[d.dest] = model.DeliveryResult{Delivered: true}
	}
	return results
}

func summarize(results map[model.Destination]model.DeliveryResult) model.DispatchOutcome {
	overall := model.OverallSuccess
	for _, res := range results {
		if !res.Delivered {
			overall = model.OverallPartial
			break
		}
	}
	return model.DispatchOutcome{Overall: overall, PerDestination: results}
}

func (s *RouterService) count(name string, tags map[string]string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, tags)
}

func (s *RouterService) timing(name string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Timing(name, d, nil)
}
