package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/LukeRoberson/Logging-Service/config"
	"github.com/LukeRoberson/Logging-Service/internal/core"
	"github.com/LukeRoberson/Logging-Service/internal/data"
	"github.com/LukeRoberson/Logging-Service/internal/notify/syslog"
	"github.com/LukeRoberson/Logging-Service/internal/notify/teams"
	"github.com/LukeRoberson/Logging-Service/internal/observability/statsd"
	"github.com/LukeRoberson/Logging-Service/internal/service"
	"github.com/LukeRoberson/Logging-Service/internal/sink"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Router        *service.RouterService
	Alerts        *service.LiveAlertService
	Observability ObservabilityContainer

	syslogClient *syslog.Client
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	AlertRepo     *data.AlertRepo
	RowWriterRepo *data.RowWriterRepo
	CacheRepo     *data.RedisCacheRepo
}

// buildObservability configures the metrics adapter.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "logging",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	return &serviceRepositories{
		AlertRepo:     data.NewAlertRepo(db),
		RowWriterRepo: data.NewRowWriterRepo(db),
		CacheRepo:     data.NewRedisCacheRepo(redisClient),
	}
}

// sinkBundle carries the built adapters plus clients that need closing on shutdown.
type sinkBundle struct {
	adapters []core.SinkAdapter
	syslog   *syslog.Client
}

// buildSinkAdapters wires one adapter per enabled destination. The web and sql
// sinks are always available; teams and syslog depend on configuration.
func buildSinkAdapters(repos *serviceRepositories, cfg config.SinksConfig, logger *slog.Logger) sinkBundle {
	adapters := []core.SinkAdapter{
		sink.NewWebSink(repos.AlertRepo, cfg.Web.SystemSource),
		sink.NewSQLSink(repos.RowWriterRepo),
	}

	if cfg.Teams.Enabled {
		client, err := teams.NewClient(teams.Config{
			WebhookURLs:       cfg.Teams.WebhookURLs,
			DefaultWebhookURL: cfg.Teams.DefaultWebhookURL,
			Timeout:           cfg.Teams.Timeout,
			RetryLimit:        cfg.Teams.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise teams notifier", "error", err)
		} else {
			adapters = append(adapters, sink.NewTeamsSink(client))
		}
	}

	var syslogClient *syslog.Client
	if cfg.Syslog.Enabled {
		client, err := syslog.NewClient(syslog.Config{
			Network: cfg.Syslog.Network,
			Address: cfg.Syslog.Address,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise syslog client", "error", err)
		} else {
			syslogClient = client
			adapters = append(adapters, sink.NewSyslogSink(client))
		}
	}

	return sinkBundle{adapters: adapters, syslog: syslogClient}
}

// NewServices wires repositories, sinks, and services into a container.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	observability := buildObservability(logger, appCfg.Observability)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	sinks := buildSinkAdapters(repos, appCfg.Sinks, logger)

	router := service.NewRouterService(service.RouterServiceOptions{
		Resolver: service.NewSinkResolver(sinks.adapters...),
		Metrics:  observability.MetricsSink,
		Logger:   logger,
	})

	alerts := service.NewLiveAlertService(service.LiveAlertServiceOptions{
		Repo:            repos.AlertRepo,
		Cache:           repos.CacheRepo,
		StatsTTL:        appCfg.Cache.StatsTTL,
		DefaultPageSize: appCfg.HTTP.DefaultPageSize,
		Logger:          logger,
	})

	return ServiceContainer{
		Router:        router,
		Alerts:        alerts,
		Observability: observability,
		syslogClient:  sinks.syslog,
	}
}

// Close releases long-lived sink and metrics connections.
func (c *ServiceContainer) Close(ctx context.Context, logger *slog.Logger) {
	if c == nil {
		return
	}
	log := logger
	if log == nil {
		log = slog.Default()
	}

	if c.syslogClient != nil {
		if err := c.syslogClient.Close(); err != nil {
			log.ErrorContext(ctx, "close syslog client failed", "error", err)
		}
	}
	if c.Observability.MetricsSink != nil {
		if err := c.Observability.MetricsSink.Close(); err != nil {
			log.ErrorContext(ctx, "close statsd client failed", "error", err)
		}
	}
}
