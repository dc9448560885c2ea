package api

import (
	"context"
	"net/http"

	"github.com/tripplanner/tripplanner-client/client/internal/types"
)

// PathTripPlan is the planner endpoint relative to the base URL.
const PathTripPlan = "/api/trip/plan"

// PlanTrip asks the backend to generate a trip plan for req.
func PlanTrip(ctx context.Context, httpClient HTTPClient, ep Endpoint, req types.TripFormData) (*types.TripPlanResponse, error) {
	var resp types.TripPlanResponse
	if err := Exchange(ctx, httpClient, ep, http.MethodPost, PathTripPlan, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
