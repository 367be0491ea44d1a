package service

import (
	"github.com/LukeRoberson/Logging-Service/internal/core"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

// SinkResolver maps destinations to their configured sink adapters. The
// mapping is fixed at startup; a destination without an adapter resolves to
// an unresolved_destination error at dispatch time.
type SinkResolver struct {
	adapters map[model.Destination]core.SinkAdapter
}

// NewSinkResolver builds a resolver over the given adapters. Nil adapters are
// skipped so callers can pass optional sinks unconditionally.
func NewSinkResolver(adapters ...core.SinkAdapter) *SinkResolver {
	m := make(map[model.Destination]core.SinkAdapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			continue
		}
		m[a.Destination()] = a
	}
	return &SinkResolver{adapters: m}
}

// Resolve returns the adapter for one destination.
func (r *SinkResolver) Resolve(d model.Destination) (core.SinkAdapter, error) {
	adapter, ok := r.adapters[d]
	if !ok {
		return nil, apperrors.UnresolvedDestination(d.String())
	}
	return adapter, nil
}

// ResolveAll returns adapters for every requested destination, in request
// order. One unresolved destination fails the whole set; no partial dispatch
// happens against a misconfigured adapter table.
func (r *SinkResolver) ResolveAll(ds []model.Destination) ([]core.SinkAdapter, error) {
	adapters := make([]core.SinkAdapter, 0, len(ds))
	for _, d := range ds {
		adapter, err := r.Resolve(d)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

// Destinations lists the destinations this resolver can serve.
func (r *SinkResolver) Destinations() []model.Destination {
	out := make([]model.Destination, 0, len(r.adapters))
	for _, d := range model.DispatchOrder() {
		if _, ok := r.adapters[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
