package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khunmostz/Repair-Management-System/internal/handlers"
	"github.com/khunmostz/Repair-Management-System/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	repairRequestHandler *handlers.RepairRequestHandler,
	categoryHandler *handlers.CategoryHandler,
	userHandler *handlers.UserHandler,
	settingsHandler *handlers.SettingsHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - all authenticated users
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/repair-requests", repairRequestHandler.ListRequests).Methods("GET")
	api.HandleFunc("/repair-requests", repairRequestHandler.CreateRequest).Methods("POST")
	api.HandleFunc("/repair-requests/{id}", repairRequestHandler.GetRequest).Methods("GET")
	api.HandleFunc("/categories", categoryHandler.ListCategories).Methods("GET")
	api.HandleFunc("/categories/{id}", categoryHandler.GetCategory).Methods("GET")
	api.HandleFunc("/upload/image", uploadHandler.UploadImages).Methods("POST")

	// Admin-only routes
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(authMiddleware.RequireRole("admin"))
	admin.HandleFunc("/categories", categoryHandler.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", categoryHandler.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", categoryHandler.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	admin.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT")
	admin.HandleFunc("/settings/test-telegram", settingsHandler.TestTelegram).Methods("POST")

	// Technician and admin routes
	staff := r.PathPrefix("/api").Subrouter()
	staff.Use(authMiddleware.RequireRole("admin", "technician"))
	staff.HandleFunc("/repair-requests/{id}", repairRequestHandler.UpdateRequest).Methods("PUT")
	staff.HandleFunc("/repair-requests/{id}", repairRequestHandler.DeleteRequest).Methods("DELETE")

	// Uploaded images (public access)
	r.HandleFunc("/uploads/images/{filename}", uploadHandler.ServeImage).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
