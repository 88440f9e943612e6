package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"truckbook/internal/auth"
	"truckbook/internal/service"
)

type RouterConfig struct {
	Reservations *service.ReservationService
	AdminAuth    service.AdminAuthService
	// JWTSecret enables the admin routes when set.
	JWTSecret string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/", Alive).Methods("GET", "HEAD")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if cfg.JWTSecret != "" && cfg.AdminAuth != nil {
		adminAuthHandler := NewAdminAuthHandler(cfg.AdminAuth)
		adminHandler := NewAdminHandler(cfg.Reservations)

		r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

		// Admin endpoints (protected)
		admin := r.PathPrefix("/admin").Subrouter()
		admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
		admin.HandleFunc("/fleet", adminHandler.GetFleet).Methods("GET")
		admin.HandleFunc("/reset", adminHandler.ResetFleet).Methods("POST")
	}

	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(os.Stdout, r))
}
