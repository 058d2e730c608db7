package server

import (
	"net/http"

	_ "github.com/Temutjin2k/agro-insurance/docs" // registers the swagger document
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	r := a.routes

	// System
	a.mux.HandleFunc("GET /{$}", r.health.Root)
	a.mux.HandleFunc("GET /health", r.health.HealthCheck)

	setupSwaggerRoutes(a.mux)
	setupMetricsRoute(a.mux)

	a.mux.HandleFunc("POST /clients", r.client.Create)
	a.mux.HandleFunc("GET /clients", r.client.List)
	a.mux.HandleFunc("GET /clients/{id}", r.client.Get)
	a.mux.HandleFunc("PUT /clients/{id}", r.client.Update)
	a.mux.HandleFunc("DELETE /clients/{id}", r.client.Delete)

	a.mux.HandleFunc("POST /crops", r.crop.Create)
	a.mux.HandleFunc("GET /crops", r.crop.List)
	a.mux.HandleFunc("GET /crops/{id}", r.crop.Get)
	a.mux.HandleFunc("PUT /crops/{id}", r.crop.Update)
	a.mux.HandleFunc("DELETE /crops/{id}", r.crop.Delete)

	a.mux.HandleFunc("POST /points", r.point.Create)
	a.mux.HandleFunc("GET /points", r.point.List)
	a.mux.HandleFunc("GET /points/nearest", r.point.Nearest)                // Nearest point to ?lat=&lon=
	a.mux.HandleFunc("GET /points/nearest.geojson", r.point.NearestGeoJSON) // Same as a GeoJSON feature
	a.mux.HandleFunc("GET /points.geojson", r.point.GeoJSON)
	a.mux.HandleFunc("GET /points/{id}", r.point.Get)
	a.mux.HandleFunc("PUT /points/{id}", r.point.Update)
	a.mux.HandleFunc("DELETE /points/{id}", r.point.Delete)
	a.mux.HandleFunc("GET /points/{id}/climate", r.climate.PointHistory)

	a.mux.HandleFunc("POST /policies", r.policy.Create)
	a.mux.HandleFunc("GET /policies", r.policy.List)
	a.mux.HandleFunc("GET /policies/{id}", r.policy.Get)
	a.mux.HandleFunc("PUT /policies/{id}", r.policy.Update)
	a.mux.HandleFunc("DELETE /policies/{id}", r.policy.Delete)

	a.mux.HandleFunc("POST /climate-records", r.climate.Create)
	a.mux.HandleFunc("POST /climate-records/bulk", r.climate.CreateBulk)
	a.mux.HandleFunc("GET /climate-records", r.climate.List)
	a.mux.HandleFunc("GET /climate-records/{id}", r.climate.Get)
	a.mux.HandleFunc("PUT /climate-records/{id}", r.climate.Update)
	a.mux.HandleFunc("DELETE /climate-records/{id}", r.climate.Delete)
	a.mux.HandleFunc("GET /climate/nearest", r.climate.NearestHistory)

	if r.changes != nil {
		a.mux.HandleFunc("GET /ws/changes", r.changes.Subscribe) // Realtime change feed
	}
	if r.llm != nil {
		a.mux.Handle(r.llm.Pattern(), r.llm.Handler())
	}
}

// setupSwaggerRoutes configures Swagger UI endpoints
func setupSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
