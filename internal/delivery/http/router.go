package http

import (
	"net/http"

	"blood-bank-api/internal/delivery/http/handler"
	"blood-bank-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	donorHandler    *handler.DonorHandler
	hospitalHandler *handler.HospitalHandler
	adminHandler    *handler.AdminHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	donorHandler *handler.DonorHandler,
	hospitalHandler *handler.HospitalHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		donorHandler:    donorHandler,
		hospitalHandler: hospitalHandler,
		adminHandler:    adminHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Donor routes
	donor := api.PathPrefix("/donor").Subrouter()
	donor.Use(r.authMiddleware.Authenticate)
	donor.Use(middleware.RequireDonor)
	donor.HandleFunc("/profile", r.donorHandler.GetProfile).Methods(http.MethodGet)
	donor.HandleFunc("/profile", r.donorHandler.UpsertProfile).Methods(http.MethodPost)
	donor.HandleFunc("/donate", r.donorHandler.Donate).Methods(http.MethodPost)
	donor.HandleFunc("/donations", r.donorHandler.GetDonations).Methods(http.MethodGet)

	// Hospital routes
	hospital := api.PathPrefix("/hospital").Subrouter()
	hospital.Use(r.authMiddleware.Authenticate)
	hospital.Use(middleware.RequireHospital)
	hospital.HandleFunc("/profile", r.hospitalHandler.GetProfile).Methods(http.MethodGet)
	hospital.HandleFunc("/profile", r.hospitalHandler.UpsertProfile).Methods(http.MethodPost)
	hospital.HandleFunc("/request", r.hospitalHandler.CreateRequest).Methods(http.MethodPost)
	hospital.HandleFunc("/requests", r.hospitalHandler.GetRequests).Methods(http.MethodGet)
	hospital.HandleFunc("/stats", r.hospitalHandler.GetStats).Methods(http.MethodGet)

	// Inventory is readable by hospitals too, so it is registered ahead of the admin-only subrouter
	inventory := api.PathPrefix("/admin/inventory").Subrouter()
	inventory.Use(r.authMiddleware.Authenticate)
	inventory.Use(middleware.RequireAdminOrHospital)
	inventory.HandleFunc("", r.adminHandler.GetInventory).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/donors", r.adminHandler.GetDonors).Methods(http.MethodGet)
	admin.HandleFunc("/hospitals", r.adminHandler.GetHospitals).Methods(http.MethodGet)
	admin.HandleFunc("/requests", r.adminHandler.GetRequests).Methods(http.MethodGet)
	admin.HandleFunc("/requests/{id}", r.adminHandler.DecideRequest).Methods(http.MethodPatch)
	admin.HandleFunc("/requests/{id}/complete", r.adminHandler.CompleteRequest).Methods(http.MethodPost)
	admin.HandleFunc("/stats", r.adminHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests never match a route method, give them one so CORS can answer
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
