package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bencare/bencare/internal/appointments"
	"github.com/bencare/bencare/internal/diagnostics"
	httpmiddleware "github.com/bencare/bencare/internal/http/middleware"
	"github.com/bencare/bencare/internal/patients"
	"github.com/bencare/bencare/internal/users"
	"github.com/bencare/bencare/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	UsersHandler        *users.Handler
	PatientsHandler     *patients.Handler
	AppointmentsHandler *appointments.Handler
	Checker             *diagnostics.Checker
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthHandler(cfg.Checker))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Patient-facing booking surface.
	r.Post("/users", cfg.UsersHandler.Create)
	r.Get("/users/{userID}", cfg.UsersHandler.Get)
	r.Post("/patients", cfg.PatientsHandler.Register)
	r.Get("/patients", cfg.PatientsHandler.Get)
	r.Post("/appointments", cfg.AppointmentsHandler.Create)
	r.Get("/appointments", cfg.AppointmentsHandler.List)
	r.Get("/appointments/{appointmentID}", cfg.AppointmentsHandler.Get)

	// Admin surface: the dashboard listing plus the mutations it drives.
	adminAuth := httpmiddleware.AdminJWT(cfg.AdminAuthSecret)
	r.Group(func(admin chi.Router) {
		admin.Use(adminAuth)
		admin.Get("/appointments/recent", cfg.AppointmentsHandler.Recent)
		admin.Patch("/appointments/{appointmentID}", cfg.AppointmentsHandler.Update)
		admin.Delete("/appointments/{appointmentID}", cfg.AppointmentsHandler.Delete)
		admin.Patch("/patients/{patientID}", cfg.PatientsHandler.Update)
		admin.Delete("/patients/{patientID}", cfg.PatientsHandler.Delete)
	})

	return r
}

// healthHandler reports liveness; with a checker wired it also probes the
// database.
func healthHandler(checker *diagnostics.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if checker == nil {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		report := checker.CheckConnection(r.Context())
		status := "ok"
		code := http.StatusOK
		if !report.Connected {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   status,
			"database": report,
		})
	}
}
