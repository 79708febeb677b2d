package server

import (
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Auth
	a.mux.HandleFunc("POST /auth/register", a.routes.auth.Register)
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /auth/refresh", a.routes.auth.Refresh)
	a.mux.Handle("GET /auth/me", a.m.RequireRoles(a.routes.auth.Profile))

	// Gyms
	a.mux.Handle("POST /gyms", a.m.RequireRoles(a.routes.gym.Create, types.AdminRole))                   // Register a new gym
	a.mux.Handle("GET /gyms/search", a.m.RequireRoles(a.routes.gym.Search))                              // Search gyms by title
	a.mux.Handle("GET /gyms/nearby", a.m.RequireRoles(a.routes.gym.Nearby))                              // Gyms within 10 km
	a.mux.Handle("POST /gyms/{gym_id}/check-ins", a.m.RequireRoles(a.routes.checkin.Create))             // Geofenced check-in
	a.mux.HandleFunc("GET /ws/gyms/{gym_id}", a.routes.feed.HandleWS)                                    // Live check-in feed for a gym

	// Check-ins
	a.mux.Handle("POST /check-ins/{checkin_id}/validate", a.m.RequireRoles(a.routes.checkin.Validate, types.AdminRole)) // Admin validation
	a.mux.Handle("GET /users/me/check-ins", a.m.RequireRoles(a.routes.checkin.History))                                 // Check-in history
	a.mux.Handle("GET /users/me/check-ins/metrics", a.m.RequireRoles(a.routes.checkin.Metrics))                         // Total check-in count
}

// setupSwaggerRoutes configures the Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName(ServiceName)))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
