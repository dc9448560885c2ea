package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	clienterrors "github.com/tripplanner/tripplanner-client/client/internal/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trip_client",
			Name:      "requests_total",
			Help:      "Gateway calls issued, by operation.",
		},
		[]string{"operation"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trip_client",
			Name:      "request_failures_total",
			Help:      "Gateway calls that ended in a UserError, by operation and error kind.",
		},
		[]string{"operation", "kind"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trip_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of gateway calls.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 240},
		},
		[]string{"operation"},
	)
)

func observeCall(op string, elapsed time.Duration, err error) {
	requestsTotal.WithLabelValues(op).Inc()
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err == nil {
		return
	}
	kind := clienterrors.KindUnknown
	var ue *clienterrors.UserError
	if errors.As(err, &ue) {
		kind = ue.Kind
	}
	requestFailuresTotal.WithLabelValues(op, kind.String()).Inc()
}
