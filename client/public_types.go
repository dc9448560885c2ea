package client

import "github.com/tripplanner/tripplanner-client/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	TripFormData = types.TripFormData

	// Responses
	TripPlanResponse = types.TripPlanResponse
	TripPlan         = types.TripPlan
	DayPlan          = types.DayPlan
	Attraction       = types.Attraction
	Hotel            = types.Hotel
	Meal             = types.Meal
	WeatherInfo      = types.WeatherInfo
	Budget           = types.Budget
	Location         = types.Location
)
