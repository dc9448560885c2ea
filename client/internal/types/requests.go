package types

// ------------------------------
// Request Types
// ------------------------------

// TripFormData holds the traveller's trip request as the planner backend
// expects it. Dates use the YYYY-MM-DD layout.
type TripFormData struct {
	City             string   `json:"city" yaml:"city"`
	StartDate        string   `json:"start_date" yaml:"start_date"`
	EndDate          string   `json:"end_date" yaml:"end_date"`
	TravelDays       int      `json:"travel_days" yaml:"travel_days"`
	Transportation   string   `json:"transportation" yaml:"transportation"`
	Accommodation    string   `json:"accommodation" yaml:"accommodation"`
	Preferences      []string `json:"preferences" yaml:"preferences"`
	FreeTextInput    string   `json:"free_text_input,omitempty" yaml:"free_text_input,omitempty"`
	StartCity        string   `json:"start_city,omitempty" yaml:"start_city,omitempty"`
	ToTransportation string   `json:"to_transportation,omitempty" yaml:"to_transportation,omitempty"`
}
