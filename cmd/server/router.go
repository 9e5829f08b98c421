package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillforge/internal/certificate/handler"
	"skillforge/internal/platform/health"
	"skillforge/pkg/platform/middleware/request"
	"skillforge/pkg/platform/middleware/requesttime"
	"skillforge/pkg/validation"
)

// requestTimeout leaves room for the simulated submission and block delays.
const requestTimeout = 30 * time.Second

// newRouter wires all public endpoints with middleware.
func newRouter(h *handler.Handler, checks *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.ClientAgent)
	r.Use(request.Logger(logger))
	r.Use(requesttime.Middleware)
	r.Use(request.BodyLimit(validation.MaxBodySize))
	r.Use(chimw.Timeout(requestTimeout))

	checks.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	h.Register(r)

	return r
}
