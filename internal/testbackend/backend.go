// Package testbackend runs an in-process imitation of the trip planner
// backend for tests. Routes, status codes and error bodies follow the real
// service: errors carry a JSON "detail" field.
package testbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tripplanner/tripplanner-client/client"
)

// Backend is a configurable fake. The zero configuration answers every
// plan request with a generated itinerary and /health with a healthy body.
type Backend struct {
	mu           sync.Mutex
	planStatus   int
	planDetail   string
	planBody     []byte
	healthStatus int
	healthBody   any
	delay        time.Duration
	received     []client.TripFormData
	hits         map[string]int
}

// Option configures a Backend.
type Option func(*Backend)

// WithPlanFailure makes /api/trip/plan answer status. An empty detail
// produces a body without a "detail" field.
func WithPlanFailure(status int, detail string) Option {
	return func(b *Backend) {
		b.planStatus = status
		b.planDetail = detail
	}
}

// WithPlanBody makes /api/trip/plan answer 200 with raw as the body.
func WithPlanBody(raw string) Option {
	return func(b *Backend) { b.planBody = []byte(raw) }
}

// WithHealth sets the /health status and JSON body.
func WithHealth(status int, body any) Option {
	return func(b *Backend) {
		b.healthStatus = status
		b.healthBody = body
	}
}

// WithDelay holds every response for d (or until the client goes away).
func WithDelay(d time.Duration) Option {
	return func(b *Backend) { b.delay = d }
}

// New builds a Backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		healthStatus: http.StatusOK,
		healthBody:   map[string]any{"status": "healthy", "service": "trip-planner", "version": "1.0.0"},
		hits:         make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start serves b on a loopback httptest.Server closed at test cleanup.
func Start(t testing.TB, opts ...Option) (*Backend, *httptest.Server) {
	t.Helper()
	b := New(opts...)
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, srv
}

// Handler returns the chi router serving the backend routes.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.count)
	r.Use(b.hold)

	r.Get("/health", b.health)
	r.Route("/api/trip", func(r chi.Router) {
		r.Post("/plan", b.plan)
		r.Get("/health", b.health)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
	})
	return r
}

// SetHealth changes the /health answer of a running backend.
func (b *Backend) SetHealth(status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.healthStatus = status
	b.healthBody = body
}

// Hits returns how many requests reached "METHOD /path".
func (b *Backend) Hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// Received returns copies of the trip requests decoded so far.
func (b *Backend) Received() []client.TripFormData {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]client.TripFormData, len(b.received))
	copy(out, b.received)
	return out
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) hold(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.delay > 0 {
			t := time.NewTimer(b.delay)
			defer t.Stop()
			select {
			case <-t.C:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	status, body := b.healthStatus, b.healthBody
	b.mu.Unlock()
	writeJSON(w, status, body)
}

func (b *Backend) plan(w http.ResponseWriter, r *http.Request) {
	var req client.TripFormData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": err.Error(), "type": "value_error.jsondecode"}},
		})
		return
	}

	b.mu.Lock()
	b.received = append(b.received, req)
	status, detail, raw := b.planStatus, b.planDetail, b.planBody
	b.mu.Unlock()

	switch {
	case status != 0 && detail != "":
		writeJSON(w, status, map[string]any{"detail": detail})
		return
	case status != 0:
		writeJSON(w, status, map[string]any{"error": http.StatusText(status)})
		return
	case raw != nil:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
		return
	}

	plan, err := DefaultPlan(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "生成旅行计划失败: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, client.TripPlanResponse{Success: true, Message: "旅行计划生成成功", Data: plan})
}

// DefaultPlan builds the fallback itinerary the backend returns when its
// agents produce nothing usable: one day per travel day, each with one or
// two attractions, a hotel, three meals and a mild forecast.
func DefaultPlan(req client.TripFormData) (*client.TripPlan, error) {
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", req.StartDate, err)
	}

	attractions := []client.Attraction{
		{Name: req.City + "市中心景点", Address: req.City + "市中心", Location: &client.Location{Longitude: 116.397128, Latitude: 39.916527}, VisitDuration: 120, Category: "历史文化", TicketPrice: 60},
		{Name: req.City + "自然风光区", Address: req.City + "郊区", Location: &client.Location{Longitude: 116.497128, Latitude: 39.816527}, VisitDuration: 180, Category: "自然风光", TicketPrice: 40},
	}
	hotels := []client.Hotel{
		{Name: req.City + "市中心酒店", Address: req.City + "市中心", PriceRange: "300-500元", Rating: "4.5", Type: "经济型酒店", EstimatedCost: 400},
		{Name: req.City + "豪华酒店", Address: req.City + "商业区", PriceRange: "800-1200元", Rating: "5.0", Type: "豪华酒店", EstimatedCost: 1000},
	}

	plan := &client.TripPlan{
		StartCity:          req.StartCity,
		City:               req.City,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		OverallSuggestions: "根据天气和景点情况，合理安排行程，注意防晒和携带雨具。",
		Budget:             &client.Budget{TotalAttractions: 180, TotalHotels: 1200, TotalMeals: 480, TotalTransportation: 200, Total: 2060},
		ToTransportation:   req.ToTransportation,
	}
	for i := 0; i < req.TravelDays; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		day := client.DayPlan{
			Date:           date,
			DayIndex:       i,
			Description:    fmt.Sprintf("第%d天行程概述", i+1),
			Transportation: "地铁/公交",
			Accommodation:  "酒店",
			Hotel:          &hotels[i%len(hotels)],
			Attractions:    []client.Attraction{attractions[i%len(attractions)]},
			Meals: []client.Meal{
				{Type: "breakfast", Name: "酒店早餐", EstimatedCost: 30},
				{Type: "lunch", Name: "当地特色午餐", EstimatedCost: 50},
				{Type: "dinner", Name: "当地特色晚餐", EstimatedCost: 80},
			},
		}
		if i%2 == 0 {
			day.Attractions = append(day.Attractions, attractions[(i+1)%len(attractions)])
		}
		plan.Days = append(plan.Days, day)
		plan.WeatherInfo = append(plan.WeatherInfo, client.WeatherInfo{
			Date: date, DayWeather: "晴", NightWeather: "多云", DayTemp: 25, NightTemp: 15, WindDirection: "南风", WindPower: "1-3级",
		})
	}
	return plan, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
