package types

// ------------------------------
// Response Types
// ------------------------------

// TripPlanResponse wraps the /api/trip/plan result
type TripPlanResponse struct {
	Success bool      `json:"success" yaml:"success"`
	Message string    `json:"message" yaml:"message"`
	Data    *TripPlan `json:"data,omitempty" yaml:"data,omitempty"`
}

// TripPlan is the generated itinerary
type TripPlan struct {
	StartCity          string        `json:"start_city,omitempty" yaml:"start_city,omitempty"`
	City               string        `json:"city" yaml:"city"`
	StartDate          string        `json:"start_date" yaml:"start_date"`
	EndDate            string        `json:"end_date" yaml:"end_date"`
	Days               []DayPlan     `json:"days" yaml:"days"`
	WeatherInfo        []WeatherInfo `json:"weather_info" yaml:"weather_info"`
	OverallSuggestions string        `json:"overall_suggestions" yaml:"overall_suggestions"`
	Budget             *Budget       `json:"budget,omitempty" yaml:"budget,omitempty"`
	ToTransportation   string        `json:"to_transportation,omitempty" yaml:"to_transportation,omitempty"`
}

// DayPlan is one day of the itinerary
type DayPlan struct {
	Date           string       `json:"date" yaml:"date"`
	DayIndex       int          `json:"day_index" yaml:"day_index"`
	Description    string       `json:"description" yaml:"description"`
	Transportation string       `json:"transportation" yaml:"transportation"`
	Accommodation  string       `json:"accommodation" yaml:"accommodation"`
	Hotel          *Hotel       `json:"hotel,omitempty" yaml:"hotel,omitempty"`
	Attractions    []Attraction `json:"attractions" yaml:"attractions"`
	Meals          []Meal       `json:"meals" yaml:"meals"`
}

// Location is a WGS84 coordinate pair
type Location struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
}

// Attraction is a point of interest scheduled on a day
type Attraction struct {
	Name          string    `json:"name" yaml:"name"`
	Address       string    `json:"address" yaml:"address"`
	Location      *Location `json:"location,omitempty" yaml:"location,omitempty"`
	VisitDuration int       `json:"visit_duration" yaml:"visit_duration"`
	Description   string    `json:"description" yaml:"description"`
	Category      string    `json:"category,omitempty" yaml:"category,omitempty"`
	Rating        *float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	ImageURL      string    `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	TicketPrice   int       `json:"ticket_price" yaml:"ticket_price"`
}

// Hotel is the accommodation for a day
type Hotel struct {
	Name          string    `json:"name" yaml:"name"`
	Address       string    `json:"address" yaml:"address"`
	Location      *Location `json:"location,omitempty" yaml:"location,omitempty"`
	PriceRange    string    `json:"price_range" yaml:"price_range"`
	Rating        string    `json:"rating" yaml:"rating"`
	Distance      string    `json:"distance" yaml:"distance"`
	Type          string    `json:"type" yaml:"type"`
	EstimatedCost int       `json:"estimated_cost" yaml:"estimated_cost"`
}

// Meal is one meal recommendation
type Meal struct {
	Type          string    `json:"type" yaml:"type"`
	Name          string    `json:"name" yaml:"name"`
	Address       string    `json:"address,omitempty" yaml:"address,omitempty"`
	Location      *Location `json:"location,omitempty" yaml:"location,omitempty"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	EstimatedCost int       `json:"estimated_cost" yaml:"estimated_cost"`
}

// WeatherInfo is the forecast for one date
type WeatherInfo struct {
	Date          string `json:"date" yaml:"date"`
	DayWeather    string `json:"day_weather" yaml:"day_weather"`
	NightWeather  string `json:"night_weather" yaml:"night_weather"`
	DayTemp       int    `json:"day_temp" yaml:"day_temp"`
	NightTemp     int    `json:"night_temp" yaml:"night_temp"`
	WindDirection string `json:"wind_direction" yaml:"wind_direction"`
	WindPower     string `json:"wind_power" yaml:"wind_power"`
}

// Budget totals the estimated trip cost
type Budget struct {
	TotalAttractions    int `json:"total_attractions" yaml:"total_attractions"`
	TotalHotels         int `json:"total_hotels" yaml:"total_hotels"`
	TotalMeals          int `json:"total_meals" yaml:"total_meals"`
	TotalTransportation int `json:"total_transportation" yaml:"total_transportation"`
	Total               int `json:"total" yaml:"total"`
}
