package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run in order after the Config defaults are applied and before the
// interception transport is installed, so whatever transport an option
// leaves in place ends up underneath the logging hooks.
type Option func(*Client) error

// WithHTTPTimeout overrides the per-call timeout.
//
// The timeout bounds the total time spent on a single call (connection,
// TLS handshake, redirects and reading the response). The value must be
// greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying client. A zero
// Timeout on hc keeps the configured timeout. hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = c.http.Timeout
		}
		c.http = &cp
		return nil
	}
}

// WithLogger sets the logger used for request, response and failure records.
// The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("header key cannot be empty")
		}
		c.header.Set(key, value)
		return nil
	}
}

// WithDebugLogging dumps each request/response at debug level when enabled
// is true.
//
// Do not enable this option in production environments as it increases
// verbosity and logs full payloads.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}
