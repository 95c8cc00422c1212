package config

import (
	"fmt"
	"time"
)

// ServerConfig holds the HTTP server configuration read at startup.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// RequestTimeout bounds the total processing time of one request.
	RequestTimeout time.Duration

	// MaxBodyBytes limits request body size on all routes.
	MaxBodyBytes int64

	// WriteRateLimit is the sustained write request rate per second.
	// Zero disables write rate limiting.
	WriteRateLimit float64

	// WriteRateBurst is the token bucket burst for write requests.
	WriteRateBurst int

	// TrackResponseSize enables the response size histogram.
	TrackResponseSize bool

	// ExcludeMetricsEndpoint keeps scrape requests to /metrics out of the
	// HTTP request counters.
	ExcludeMetricsEndpoint bool
}

// LoadServerConfig reads the server configuration from the environment and
// validates it.
func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:                   GetEnvString("SERVER_ADDR", ":8000"),
		RequestTimeout:         GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxBodyBytes:           int64(GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		WriteRateLimit:         GetEnvFloat("WRITE_RATE_LIMIT", 0),
		WriteRateBurst:         GetEnvInt("WRITE_RATE_BURST", 10),
		TrackResponseSize:      GetEnvBool("TRACK_RESPONSE_SIZE", false),
		ExcludeMetricsEndpoint: GetEnvBool("EXCLUDE_METRICS_ENDPOINT", true),
	}

	if cfg.Addr == "" {
		return ServerConfig{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return ServerConfig{}, fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxBodyBytes <= 0 {
		return ServerConfig{}, fmt.Errorf("max body bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.WriteRateLimit < 0 {
		return ServerConfig{}, fmt.Errorf("write rate limit must not be negative, got %g", cfg.WriteRateLimit)
	}
	if cfg.WriteRateLimit > 0 && cfg.WriteRateBurst <= 0 {
		return ServerConfig{}, fmt.Errorf("write rate burst must be positive when rate limiting is enabled")
	}

	return cfg, nil
}
