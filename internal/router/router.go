package router

import (
	"net/http"

	"github.com/cx-tal-miterani/scenic-airways/internal/handlers"
	"github.com/cx-tal-miterani/scenic-airways/internal/middleware"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router. ws serves the
// WebSocket endpoint and may be nil.
func SetupRouter(h *handlers.Handler, ws http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/session", h.Session).Methods(http.MethodGet, http.MethodOptions)

	// Flights
	api.HandleFunc("/flights/search", h.SearchFlights).Methods(http.MethodPost, http.MethodOptions)

	// Dashboard
	api.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/dashboard/flight", h.SelectFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/dashboard/seats/{seatId}/toggle", h.ToggleSeat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/dashboard/back", h.BackToResults).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/dashboard/continue", h.ProceedToConfirm).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/dashboard/cancel", h.CancelConfirmation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/dashboard/confirm", h.ConfirmBooking).Methods(http.MethodPost, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.GetBookings).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for dashboard events
	if ws != nil {
		api.HandleFunc("/ws", ws).Methods(http.MethodGet)
	}

	// Health check
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
