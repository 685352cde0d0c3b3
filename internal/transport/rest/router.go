// Package rest exposes the triage service over HTTP.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/triage"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog        *catalog.Catalog
	Triage         *triage.Service
	Logger         logger.Logger
	AllowedOrigins []string
	MetricsPath    string // empty disables the metrics endpoint
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	h := NewHandler(c.Catalog, c.Triage, c.Logger)

	r.Use(requestIDMiddleware)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(loggingMiddleware(c.Logger))
	r.Use(metricsMiddleware)

	r.HandleFunc("/questions", h.Questions).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/triage", h.Triage).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	if c.MetricsPath != "" {
		r.Handle(c.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	return r
}
