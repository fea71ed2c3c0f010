package http

import (
	"net/http"

	"blood-donation-api/internal/delivery/http/handler"
	"blood-donation-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const uploadsPrefix = "/public/uploads/"

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Profile     *handler.ProfileHandler
	Location    *handler.LocationHandler
	Appointment *handler.AppointmentHandler
	Chat        *handler.ChatHandler
	Admin       *handler.AdminHandler
	AdminUser   *handler.AdminUserHandler
	AuditLog    *handler.AuditLogHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Admin     *middleware.AdminMiddleware
	CORS      *middleware.CORSMiddleware
	Logging   *middleware.LoggingMiddleware
	Secure    func(http.Handler) http.Handler
	RateLimit func(http.Handler) http.Handler
}

type Router struct {
	router      *mux.Router
	handlers    Handlers
	middlewares Middlewares
	// uploadDir is served under /public/uploads when set
	uploadDir string
}

func NewRouter(handlers Handlers, middlewares Middlewares, uploadDir string) *Router {
	return &Router{
		router:      mux.NewRouter(),
		handlers:    handlers,
		middlewares: middlewares,
		uploadDir:   uploadDir,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers
	m := r.middlewares

	r.router.Use(middleware.RequestID, m.Logging.Handle, m.Logging.Recover, middleware.Metrics, m.Secure, m.CORS.Handle)

	// Health and metrics
	r.router.HandleFunc("/", h.Health.Ready).Methods(http.MethodGet)
	r.router.HandleFunc("/health-check", h.Health.HealthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if r.uploadDir != "" {
		r.router.PathPrefix(uploadsPrefix).
			Handler(http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(r.uploadDir)))).
			Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public, rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(m.RateLimit)
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/token/refresh", h.Auth.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)

	// Admin bootstrap, guarded by the bootstrap key instead of an admin secret
	api.Handle("/admin/create-admin", m.Admin.RequireBootstrapKey(http.HandlerFunc(h.Admin.CreateAdmin))).Methods(http.MethodPost)

	// Admin routes (X-Admin-Secret)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(m.Admin.Authenticate)

	admin.HandleFunc("/blood-storage", h.Admin.GetBloodStorage).Methods(http.MethodGet)
	admin.HandleFunc("/blood-storage", h.Admin.SetBloodStorage).Methods(http.MethodPost)

	admin.HandleFunc("/users", h.AdminUser.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.AdminUser.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", h.AdminUser.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.AdminUser.UpdateUser).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}/update-profile-picture", h.AdminUser.UpdateUserPicture).Methods(http.MethodPatch)

	admin.HandleFunc("/locations", h.Location.GetAllLocations).Methods(http.MethodGet)
	admin.HandleFunc("/locations", h.Location.CreateLocation).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{id}", h.Location.GetLocation).Methods(http.MethodGet)
	admin.HandleFunc("/locations/{id}", h.Location.UpdateLocation).Methods(http.MethodPatch)
	admin.HandleFunc("/locations/{id}", h.Location.DeleteLocation).Methods(http.MethodDelete)

	admin.HandleFunc("/appointments", h.Appointment.GetAllAppointments).Methods(http.MethodGet)

	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Donor routes (protected)
	protected := api.NewRoute().Subrouter()
	protected.Use(m.Auth.Authenticate)

	protected.HandleFunc("/profile", h.Profile.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", h.Profile.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/profile/edit-password", h.Profile.EditPassword).Methods(http.MethodPatch)
	protected.HandleFunc("/profile/update-profile-picture", h.Profile.UpdateProfilePicture).Methods(http.MethodPatch)

	protected.HandleFunc("/locations", h.Location.GetAllLocations).Methods(http.MethodGet)
	protected.HandleFunc("/locations/{id}", h.Location.GetLocation).Methods(http.MethodGet)

	protected.HandleFunc("/appointments", h.Appointment.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", h.Appointment.GetMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.GetMyAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.UpdateAppointmentStatus).Methods(http.MethodPatch)

	protected.HandleFunc("/ai/chat", h.Chat.GetHistory).Methods(http.MethodGet)
	protected.HandleFunc("/ai/chat", h.Chat.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/ai/chat", h.Chat.ClearHistory).Methods(http.MethodDelete)

	// Preflight requests are answered by the CORS middleware
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r.router
}
