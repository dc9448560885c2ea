package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	clienterrors "github.com/tripplanner/tripplanner-client/client/internal/errors"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoint carries everything Exchange needs besides the HTTP client.
type Endpoint struct {
	BaseURL string
	Header  http.Header
	Logger  zerolog.Logger
}

type callIDKey struct{}

// WithCallID tags ctx with the id used to correlate log records of one call.
func WithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callIDKey{}, id)
}

// CallID returns the id set by WithCallID, or "".
func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

// SafeLog runs emit and swallows any panic raised while logging.
func SafeLog(emit func()) {
	defer func() { _ = recover() }()
	emit()
}

// Exchange performs one request and classifies its outcome.
//
// payload (when non-nil) is sent as the JSON body; out (when non-nil)
// receives the decoded JSON response. Any failure is returned as a
// *clienterrors.UserError; the raw transport error never escapes.
func Exchange(ctx context.Context, httpClient HTTPClient, ep Endpoint, method, path string, payload, out any) error {
	req, err := newRequest(ctx, ep, method, path, payload)
	if err != nil {
		return classify(ctx, ep.Logger, method, path, clienterrors.Setup(err))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if resp == nil {
			return classify(ctx, ep.Logger, method, path, clienterrors.Network(err))
		}
		// Only a failed redirect policy returns both; its body is already closed.
		return classify(ctx, ep.Logger, method, path, clienterrors.FromResponse(resp.StatusCode, nil))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(ctx, ep.Logger, method, path, clienterrors.Network(err))
	}

	outcome := clienterrors.FromResponse(resp.StatusCode, body)
	if outcome.Kind != clienterrors.OutcomeSuccess {
		return classify(ctx, ep.Logger, method, path, outcome)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		SafeLog(func() {
			ep.Logger.Error().Err(err).
				Str("call_id", CallID(ctx)).
				Str("method", method).
				Str("path", path).
				Int("status_code", resp.StatusCode).
				Msg("HTTP response decode failed")
		})
		return &clienterrors.UserError{
			Kind:       clienterrors.KindUnknown,
			Message:    "invalid response body: " + err.Error(),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// newRequest builds the outbound request. Every error it returns means the
// request never left the process.
func newRequest(ctx context.Context, ep Endpoint, method, path string, payload any) (*http.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	target := ep.BaseURL + path
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported protocol scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("no host in request URL %q", target)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range ep.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	return httpReq, nil
}

// classify logs the classification inputs and returns the UserError for o.
func classify(ctx context.Context, logger zerolog.Logger, method, path string, o clienterrors.Outcome) error {
	SafeLog(func() {
		ev := logger.Error().
			Str("call_id", CallID(ctx)).
			Str("method", method).
			Str("path", path).
			Str("outcome", o.Kind.String())
		if o.StatusCode > 0 {
			ev = ev.Int("status_code", o.StatusCode)
		}
		ev.Str("raw_message", o.RawMessage()).Msg("HTTP response error")
	})
	return clienterrors.Classify(o)
}
