package patients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bencare/bencare/internal/models"
	"github.com/bencare/bencare/pkg/logging"
)

// Handler handles HTTP requests for patients
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new patients handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Register handles POST /patients requests.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var params models.RegisterPatientParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Error("patients: failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.repo.Register(r.Context(), &params)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("patients: failed to register patient", "error", err, "user_id", params.UserID)
		http.Error(w, "failed to register patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient registered", "id", patient.ID, "user_id", patient.UserID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(patient)
}

// Get handles GET /patients?user_id= and GET /patients (full roster).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.list(w, r)
		return
	}

	patient, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("patients: failed to load patient", "error", err, "user_id", userID)
		http.Error(w, "failed to load patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(patient)
}

// ListPatientsResponse is the response for the patient roster.
type ListPatientsResponse struct {
	Patients []models.PatientWithRelations `json:"patients"`
	Count    int                           `json:"count"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("patients: failed to list patients", "error", err)
		http.Error(w, "failed to list patients", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListPatientsResponse{Patients: patients, Count: len(patients)})
}

// Update handles PATCH /patients/{patientID} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	if id == "" {
		http.Error(w, "missing patient id", http.StatusBadRequest)
		return
	}

	var params models.UpdatePatientParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.repo.Update(r.Context(), id, &params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("patients: failed to update patient", "error", err, "id", id)
		http.Error(w, "failed to update patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient updated", "id", patient.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(patient)
}

// Delete handles DELETE /patients/{patientID} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	if id == "" {
		http.Error(w, "missing patient id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("patients: failed to delete patient", "error", err, "id", id)
		http.Error(w, "failed to delete patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrMissingUserID) ||
		errors.Is(err, models.ErrMissingName) ||
		errors.Is(err, models.ErrMissingEmail) ||
		errors.Is(err, models.ErrMissingPhone) ||
		errors.Is(err, models.ErrInvalidGender)
}
