package client

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is used when Config.BaseURL is empty.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout bounds every call. Plan generation on the backend runs
	// several LLM agents in sequence, hence the generous value.
	DefaultTimeout = 240 * time.Second
)

// Config is the construction-time configuration of a Client. The Client
// keeps its own copy; later changes to a Config value have no effect.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers http.Header
}

func (c Config) withDefaults() Config {
	out := Config{BaseURL: c.BaseURL, Timeout: c.Timeout, Headers: c.Headers.Clone()}
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Headers == nil {
		out.Headers = make(http.Header)
	}
	if out.Headers.Get("Content-Type") == "" {
		out.Headers.Set("Content-Type", "application/json")
	}
	return out
}
