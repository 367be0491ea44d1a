package config

import (
	"strings"
	"time"
)

const defaultServiceName = "logging-service"

// SinksConfig groups configuration for the destination sinks.
type SinksConfig struct {
	Web    WebSinkConfig    `envPrefix:"SINK_WEB_"`
	Teams  TeamsSinkConfig  `envPrefix:"SINK_TEAMS_"`
	Syslog SyslogSinkConfig `envPrefix:"SINK_SYSLOG_"`
}

// Sanitize applies guardrails to sink sub-configs.
func (c *SinksConfig) Sanitize() {
	c.Web.sanitize()
	c.Teams.sanitize()
	c.Syslog.sanitize()
}

// WebSinkConfig controls the live-alert store sink.
type WebSinkConfig struct {
	// SystemSource is the source name this service uses for its own events.
	// Records from it are flagged is_system in the store.
	SystemSource string `env:"SYSTEM_SOURCE" envDefault:"logging-service"`
}

func (c *WebSinkConfig) sanitize() {
	if c.SystemSource = strings.TrimSpace(c.SystemSource); c.SystemSource == "" {
		c.SystemSource = defaultServiceName
	}
}

// TeamsSinkConfig controls Microsoft Teams webhook fan-out. WebhookURLs maps
// channel identifiers to incoming webhooks, e.g.
// SINK_TEAMS_WEBHOOK_URLS="ops:https://...,security:https://...".
type TeamsSinkConfig struct {
	Enabled           bool              `env:"ENABLED"             envDefault:"false"`
	DefaultWebhookURL string            `env:"DEFAULT_WEBHOOK_URL"`
	WebhookURLs       map[string]string `env:"WEBHOOK_URLS"`
	Timeout           time.Duration     `env:"TIMEOUT"             envDefault:"5s"`
	RetryLimit        int               `env:"RETRY_LIMIT"         envDefault:"3"`
}

func (c *TeamsSinkConfig) sanitize() {
	c.DefaultWebhookURL = strings.TrimSpace(c.DefaultWebhookURL)
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
	if c.Enabled && c.DefaultWebhookURL == "" && len(c.WebhookURLs) == 0 {
		c.Enabled = false
	}
}

// SyslogSinkConfig controls the syslog forwarder.
type SyslogSinkConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Network string `env:"NETWORK" envDefault:"udp"`
	Address string `env:"ADDRESS" envDefault:"127.0.0.1:514"`
}

func (c *SyslogSinkConfig) sanitize() {
	c.Network = strings.ToLower(strings.TrimSpace(c.Network))
	if c.Network == "" {
		c.Network = "udp"
	}
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Enabled = false
	}
}
