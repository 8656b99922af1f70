package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":5000"`

	// StaticDir serves the single-page app build from disk.
	// Leave empty to serve the embedded web/dist bundle.
	StaticDir string `env:"HTTP_STATIC_DIR" envDefault:""`

	// CORSAllowedOrigin is echoed in Access-Control-Allow-Origin.
	CORSAllowedOrigin string `env:"HTTP_CORS_ALLOWED_ORIGIN" envDefault:"*"`

	// CORSMaxAgeSeconds is how long browsers may cache preflight responses.
	CORSMaxAgeSeconds int `env:"HTTP_CORS_MAX_AGE" envDefault:"86400"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	h.StaticDir = strings.TrimSpace(h.StaticDir)
	if strings.TrimSpace(h.CORSAllowedOrigin) == "" {
		h.CORSAllowedOrigin = "*"
	}
	if h.CORSMaxAgeSeconds < 0 {
		h.CORSMaxAgeSeconds = 0
	}
}
