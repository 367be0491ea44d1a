package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukeRoberson/Logging-Service/internal/domain/model"
	apperrors "github.com/LukeRoberson/Logging-Service/internal/errors"
)

type mockAlertRepository struct {
	queryFunc func(ctx context.Context, q model.AlertQuery) (*model.AlertPage, error)
	statsFunc func(ctx context.Context) (*model.AlertStats, error)

	mu         sync.Mutex
	statsCalls int
}

func (m *mockAlertRepository) Insert(context.Context, model.AlertRecord) (*model.AlertRecord, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAlertRepository) Query(ctx context.Context, q model.AlertQuery) (*model.AlertPage, error) {
	return m.queryFunc(ctx, q)
}

func (m *mockAlertRepository) Stats(ctx context.Context) (*model.AlertStats, error) {
	m.mu.Lock()
	m.statsCalls++
	m.mu.Unlock()
	return m.statsFunc(ctx)
}

type mockCacheRepository struct {
	mu    sync.Mutex
	store map[string][]byte

	getErr error
	setErr error
}

func newMockCache() *mockCacheRepository {
	return &mockCacheRepository{store: make(map[string][]byte)}
}

func (m *mockCacheRepository) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *mockCacheRepository) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[key], nil
}

func TestQueryAppliesDefaults(t *testing.T) {
	var gotQuery model.AlertQuery
	repo := &mockAlertRepository{
		queryFunc: func(_ context.Context, q model.AlertQuery) (*model.AlertPage, error) {
			gotQuery = q
			return &model.AlertPage{Alerts: []*model.AlertRecord{}}, nil
		},
	}
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo, DefaultPageSize: 100})

	q := model.AlertQuery{}
	_, err := svc.Query(context.Background(), &q)

	require.NoError(t, err)
	assert.Equal(t, 100, gotQuery.PageSize)
	assert.Equal(t, 1, gotQuery.PageNumber)
	assert.Equal(t, 100, q.PageSize)
}

func TestQueryWrapsStorageError(t *testing.T) {
	repo := &mockAlertRepository{
		queryFunc: func(context.Context, model.AlertQuery) (*model.AlertPage, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo})

	_, err := svc.Query(context.Background(), &model.AlertQuery{})

	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
}

func TestStatsCachesSnapshot(t *testing.T) {
	repo := &mockAlertRepository{
		statsFunc: func(context.Context) (*model.AlertStats, error) {
			return &model.AlertStats{Total: 7, Critical: 2}, nil
		},
	}
	cache := newMockCache()
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo, Cache: cache})

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.statsCalls)

	var cached model.AlertStats
	require.NoError(t, json.Unmarshal(cache.store[statsCacheKey], &cached))
	assert.Equal(t, 7, cached.Total)
}

func TestStatsToleratesCacheFailure(t *testing.T) {
	repo := &mockAlertRepository{
		statsFunc: func(context.Context) (*model.AlertStats, error) {
			return &model.AlertStats{Total: 3}, nil
		},
	}
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo, Cache: cache})

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
}

func TestStatsWithoutCache(t *testing.T) {
	repo := &mockAlertRepository{
		statsFunc: func(context.Context) (*model.AlertStats, error) {
			return &model.AlertStats{Total: 1}, nil
		},
	}
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo})

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestStatsWrapsStorageError(t *testing.T) {
	repo := &mockAlertRepository{
		statsFunc: func(context.Context) (*model.AlertStats, error) {
			return nil, errors.New("relation does not exist")
		},
	}
	svc := NewLiveAlertService(LiveAlertServiceOptions{Repo: repo})

	_, err := svc.Stats(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
}
