package submission

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the compiled-in submission URL. Deployments override it
// through configuration.
const DefaultEndpoint = "http://localhost:8787/api/submit-idea"

// DefaultTimeout bounds a single submission attempt.
const DefaultTimeout = 15 * time.Second

// Option configures the Client.
type Option func(*config)

type config struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			cfg.endpoint = trimmed
		}
	}
}

// WithHTTPClient supplies the transport, mostly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		if client != nil {
			cfg.httpClient = client
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each submission.
func WithUserAgent(agent string) Option {
	return func(cfg *config) {
		cfg.userAgent = strings.TrimSpace(agent)
	}
}

// WithLogger routes client diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
