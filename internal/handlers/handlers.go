package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cx-tal-miterani/scenic-airways/internal/auth"
	"github.com/cx-tal-miterani/scenic-airways/internal/booking"
	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/service"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	dashboard service.DashboardService
}

// NewHandler creates a new Handler instance
func NewHandler(dashboard service.DashboardService) *Handler {
	return &Handler{
		dashboard: dashboard,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, booking.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "Login required")
	case errors.Is(err, service.ErrFlightNotInResults), errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "Flight not found")
	case errors.Is(err, booking.ErrInvalidState):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrNoSeatsSelected), errors.Is(err, booking.ErrPassengerCount), errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	session, err := h.dashboard.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	session, err := h.dashboard.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// Logout handles POST /api/auth/logout. The session is anonymous even when
// clearing storage fails.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.dashboard.Logout(r.Context())
	if err != nil {
		slog.Warn("logout could not clear storage", "error", err)
	}
	respondJSON(w, http.StatusOK, session)
}

// Session handles GET /api/auth/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Session(r.Context()))
}

// SearchFlights handles POST /api/flights/search
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	var filters models.SearchFilters
	if err := decode(r, &filters); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	flights, err := h.dashboard.Search(r.Context(), filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.View(r.Context()))
}

// SelectFlight handles POST /api/dashboard/flight
func (h *Handler) SelectFlight(w http.ResponseWriter, r *http.Request) {
	var req models.SelectFlightRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightID == "" {
		respondError(w, http.StatusBadRequest, "Flight ID is required")
		return
	}
	h.respondView(w)(h.dashboard.SelectFlight(r.Context(), req.FlightID))
}

// ToggleSeat handles POST /api/dashboard/seats/{seatId}/toggle
func (h *Handler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	seatID := mux.Vars(r)["seatId"]
	h.respondView(w)(h.dashboard.ToggleSeat(r.Context(), seatID))
}

// BackToResults handles POST /api/dashboard/back
func (h *Handler) BackToResults(w http.ResponseWriter, r *http.Request) {
	h.respondView(w)(h.dashboard.BackToResults(r.Context()))
}

// ProceedToConfirm handles POST /api/dashboard/continue
func (h *Handler) ProceedToConfirm(w http.ResponseWriter, r *http.Request) {
	h.respondView(w)(h.dashboard.ProceedToConfirm(r.Context()))
}

// CancelConfirmation handles POST /api/dashboard/cancel
func (h *Handler) CancelConfirmation(w http.ResponseWriter, r *http.Request) {
	h.respondView(w)(h.dashboard.CancelConfirmation(r.Context()))
}

// ConfirmBooking handles POST /api/dashboard/confirm
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.dashboard.Confirm(r.Context(), req.Passengers)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// GetBookings handles GET /api/bookings
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.dashboard.Bookings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *Handler) respondView(w http.ResponseWriter) func(models.DashboardView, error) {
	return func(view models.DashboardView, err error) {
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}
