package http

import (
	"net/http"

	"clinic-appointment-service/internal/delivery/http/handler"
	"clinic-appointment-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	dashboardHandler   *handler.DashboardHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		dashboardHandler:   dashboardHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
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
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor browsing (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Slot grid (any authenticated user)
	slots := api.PathPrefix("/doctors").Subrouter()
	slots.Use(r.authMiddleware.Authenticate)
	slots.HandleFunc("/{id}/slots", r.doctorHandler.GetSlots).Methods(http.MethodGet)

	// Booking (patients)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.Handle("/{id}/complete", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.appointmentHandler.CompleteAppointment))).Methods(http.MethodPost)

	// Role dashboards
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(r.authMiddleware.Authenticate)
	dashboard.Handle("/patient", middleware.RequirePatient(http.HandlerFunc(r.dashboardHandler.PatientDashboard))).Methods(http.MethodGet)
	dashboard.Handle("/doctor", middleware.RequireDoctor(http.HandlerFunc(r.dashboardHandler.DoctorDashboard))).Methods(http.MethodGet)
	dashboard.Handle("/admin", middleware.RequireAdmin(http.HandlerFunc(r.dashboardHandler.AdminDashboard))).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/availability", r.doctorHandler.SetAvailability).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/remove", r.doctorHandler.RemoveDoctors).Methods(http.MethodPost)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
