package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flixauth/internal/handlers"
	"flixauth/internal/middlewares"
)

// RegisterRoutes builds the public handler. POST /login is the only route.
func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(middlewares.NewPrometheusMiddleware(s.metrics).Instrument)

	s.registerAuthRoutes(r)

	var h http.Handler = r
	h = middlewares.CorsMiddleware(s.cfg.Origins())(h)
	h = middlewares.Recover(h)
	h = middlewares.AccessLog(h)
	h = middlewares.RequestID(h)
	return h
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.metrics)
	r.HandleFunc("/login", ah.Login).Methods("POST")
}

// RegisterAdminRoutes builds the handler for the admin listener.
func (s *Server) RegisterAdminRoutes() http.Handler {
	r := mux.NewRouter()

	ch := handlers.NewCommonHandler()
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	return middlewares.Recover(r)
}
