package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"

	"github.com/tripplanner/tripplanner-client/client/internal/api"
)

// debugTransport dumps full HTTP requests and responses for troubleshooting
// backend communication (malformed plans, unexpected status codes).
//
// When to use:
//   - Set TRIP_DEBUG=true or DEBUG=true environment variable
//   - Pass WithDebugLogging(true), or --debug on tripctl
//
// Dumps include complete trip payloads and are emitted at debug level, so
// the logger level must allow debug records for anything to appear.
//
// Example usage:
//
//	export TRIP_DEBUG=true
//	tripctl plan --city 北京 --days 3  # now logs all HTTP traffic
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		api.SafeLog(func() {
			dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request dump")
		})
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		api.SafeLog(func() {
			dt.logger.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		})
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		api.SafeLog(func() {
			dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response dump")
		})
	}
	return resp, nil
}

// debugLoggingRequested reports whether TRIP_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("TRIP_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
