package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tripplanner/tripplanner-client/client/internal/api"
	clienterrors "github.com/tripplanner/tripplanner-client/client/internal/errors"
)

// Fallback messages used when a classified failure carries no text.
const (
	msgPlanFailed   = "failed to generate trip plan"
	msgHealthFailed = "health check failed"
)

const (
	opSubmitTripPlan = "submit_trip_plan"
	opCheckHealth    = "check_health"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the gateway to the trip planner backend. Construct it once and
// share it; it holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	header  http.Header
	http    *http.Client
	logger  zerolog.Logger
	debug   bool
}

// New constructs a Client from cfg. Empty fields of cfg take the package
// defaults. Additional options can be provided via functional arguments.
//
// An error is returned only when an option is invalid; a malformed base URL
// is reported by each call instead.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		header:  cfg.Headers,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()
	return c, nil
}

// wrapTransport installs the interception chain on the HTTP client:
// intercept -> debug (optional) -> base.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, logger: c.logger}
	}
	c.http.Transport = &interceptTransport{base: base, logger: c.logger}
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle keep-alive connections. Safe to call multiple times.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) endpoint() api.Endpoint {
	return api.Endpoint{BaseURL: c.baseURL, Header: c.header, Logger: c.logger}
}

// begin tags ctx with a fresh call id and returns the function that records
// the call's metrics once it has finished.
func (c *Client) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx = api.WithCallID(ctx, uuid.NewString())
	start := time.Now()
	return ctx, func(err error) {
		observeCall(op, time.Since(start), err)
	}
}

// fail logs the operation failure and returns the single re-wrapped error.
func (c *Client) fail(ctx context.Context, op, fallback string, err error) error {
	ue := clienterrors.Rewrap(err, fallback)
	api.SafeLog(func() {
		c.logger.Error().
			Str("call_id", api.CallID(ctx)).
			Str("operation", op).
			Str("kind", ue.Kind.String()).
			Str("error", ue.Message).
			Msg(fallback)
	})
	return ue
}

// --------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------

// SubmitTripPlan posts input to the planner and returns the generated plan.
// Any failure is a *UserError whose message is fit for display.
func (c *Client) SubmitTripPlan(ctx context.Context, input TripFormData) (*TripPlanResponse, error) {
	ctx, done := c.begin(ctx, opSubmitTripPlan)
	resp, err := api.PlanTrip(ctx, c.http, c.endpoint(), input)
	done(err)
	if err != nil {
		return nil, c.fail(ctx, opSubmitTripPlan, msgPlanFailed, err)
	}
	return resp, nil
}

// CheckHealth fetches the backend health document. The decoded JSON is
// returned as-is (maps, slices, strings, float64 numbers).
func (c *Client) CheckHealth(ctx context.Context) (any, error) {
	ctx, done := c.begin(ctx, opCheckHealth)
	body, err := api.Health(ctx, c.http, c.endpoint())
	done(err)
	if err != nil {
		return nil, c.fail(ctx, opCheckHealth, msgHealthFailed, err)
	}
	return body, nil
}
