package client

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tripplanner/tripplanner-client/client/internal/api"
)

// interceptTransport emits one record before each request is dispatched and
// one for each response received. It never changes the request or the
// response. Transport errors pass through untouched; they are logged by the
// classification step that turns them into a UserError.
type interceptTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (t *interceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	callID := api.CallID(req.Context())
	api.SafeLog(func() {
		t.logger.Info().
			Str("call_id", callID).
			Str("method", strings.ToUpper(req.Method)).
			Str("path", req.URL.Path).
			Msg("HTTP request")
	})

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	api.SafeLog(func() {
		t.logger.Info().
			Str("call_id", callID).
			Int("status_code", resp.StatusCode).
			Str("path", req.URL.Path).
			Msg("HTTP response")
	})
	return resp, nil
}
