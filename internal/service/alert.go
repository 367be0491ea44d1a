package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LukeRoberson/Logging-Service/internal/core"
	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

const statsCacheKey = "livealerts:stats"

// LiveAlertService serves filtered, paginated reads over the live-alert
// store. Severity stats are cached briefly since the UI polls them.
type LiveAlertService struct {
	repo            core.AlertRepository
	cache           core.CacheRepository
	statsTTL        time.Duration
	defaultPageSize int
	logger          *slog.Logger
}

// LiveAlertServiceOptions configures the live alert service.
type LiveAlertServiceOptions struct {
	Repo            core.AlertRepository
	Cache           core.CacheRepository
	StatsTTL        time.Duration
	DefaultPageSize int
	Logger          *slog.Logger
}

// NewLiveAlertService creates a new live alert service.
func NewLiveAlertService(opts LiveAlertServiceOptions) *LiveAlertService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statsTTL := opts.StatsTTL
	if statsTTL <= 0 {
		statsTTL = 15 * time.Second
	}

	pageSize := opts.DefaultPageSize
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}

	return &LiveAlertService{
		repo:            opts.Repo,
		cache:           opts.Cache,
		statsTTL:        statsTTL,
		defaultPageSize: pageSize,
		logger:          logger,
	}
}

// Query returns one page of alerts matching the filters, newest first. The
// query is normalized in place so callers can echo the applied paging values.
func (s *LiveAlertService) Query(ctx context.Context, q *model.AlertQuery) (*model.AlertPage, error) {
	q.Normalize(s.defaultPageSize)

	page, err := s.repo.Query(ctx, *q)
	if err != nil {
		return nil, apperrors.Storage(err, "query live alerts")
	}
	return page, nil
}

// Stats returns severity counts over every stored alert, served from cache
// when a recent snapshot exists. Cache failures degrade to a direct read.
func (s *LiveAlertService) Stats(ctx context.Context) (*model.AlertStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apperrors.Storage(err, "load alert stats")
	}

	s.storeStats(ctx, stats)
	return stats, nil
}

func (s *LiveAlertService) cachedStats(ctx context.Context) *model.AlertStats {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		s.logger.WarnContext(ctx, "stats cache read failed", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var stats model.AlertStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.WarnContext(ctx, "stats cache entry malformed", "error", err)
		return nil
	}
	return &stats
}

func (s *LiveAlertService) storeStats(ctx context.Context, stats *model.AlertStats) {
	if s.cache == nil || stats == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		s.logger.WarnContext(ctx, "stats cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.statsTTL); err != nil {
		s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
	}
}
