package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bencare/bencare/internal/models"
	"github.com/bencare/bencare/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListAppointmentsResponse wraps filtered appointment listings.
type ListAppointmentsResponse struct {
	Appointments []models.AppointmentWithRelations `json:"appointments"`
	Count        int                               `json:"count"`
}

// Create handles POST /appointments requests. New bookings default to
// pending until an admin schedules them.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params models.CreateAppointmentParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Error("appointments: failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Create(r.Context(), &params)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("appointments: failed to create appointment", "error", err)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(appt)
}

// Get handles GET /appointments/{appointmentID} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		http.Error(w, "missing appointment id", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("appointments: failed to load appointment", "error", err, "id", id)
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(appt)
}

// List handles GET /appointments requests filtered by ?user_id= or
// ?patient_id=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		appts []models.AppointmentWithRelations
		err   error
	)
	switch {
	case r.URL.Query().Get("user_id") != "":
		appts, err = h.service.ListByUser(r.Context(), r.URL.Query().Get("user_id"))
	case r.URL.Query().Get("patient_id") != "":
		appts, err = h.service.ListByPatient(r.Context(), r.URL.Query().Get("patient_id"))
	default:
		http.Error(w, "user_id or patient_id query parameter required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("appointments: failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListAppointmentsResponse{Appointments: appts, Count: len(appts)})
}

// Recent handles GET /appointments/recent requests, the admin dashboard
// listing with status counts.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	recent, err := h.service.RecentList(r.Context())
	if err != nil {
		h.logger.Error("appointments: failed to list recent appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recent)
}

// Update handles PATCH /appointments/{appointmentID} requests: reschedule or
// cancel, with the booking user notified by SMS.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		http.Error(w, "missing appointment id", http.StatusBadRequest)
		return
	}

	var params models.UpdateAppointmentParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Error("appointments: failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params.AppointmentID = id
	if params.Type != UpdateTypeSchedule && params.Type != UpdateTypeCancel {
		http.Error(w, "type must be schedule or cancel", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Update(r.Context(), &params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("appointments: failed to update appointment", "error", err, "id", id)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(appt)
}

// Delete handles DELETE /appointments/{appointmentID} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		http.Error(w, "missing appointment id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("appointments: failed to delete appointment", "error", err, "id", id)
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrMissingUserID) ||
		errors.Is(err, models.ErrMissingPatientID) ||
		errors.Is(err, models.ErrMissingSchedule) ||
		errors.Is(err, models.ErrInvalidStatus)
}
