package api

import (
	"context"
	"net/http"
)

// PathHealth is the service health endpoint relative to the base URL.
const PathHealth = "/health"

// Health fetches the backend health document without interpreting it.
func Health(ctx context.Context, httpClient HTTPClient, ep Endpoint) (any, error) {
	var body any
	if err := Exchange(ctx, httpClient, ep, http.MethodGet, PathHealth, nil, &body); err != nil {
		return nil, err
	}
	return body, nil
}
