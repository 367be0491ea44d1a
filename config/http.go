package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DefaultPageSize applies to live-alert queries that omit page_size.
	DefaultPageSize int `env:"HTTP_DEFAULT_PAGE_SIZE" envDefault:"200"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.DefaultPageSize <= 0 {
		h.DefaultPageSize = 200
	}
}
