package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cx-tal-miterani/scenic-airways/internal/auth"
	"github.com/cx-tal-miterani/scenic-airways/internal/booking"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/websocket"
)

var (
	// ErrFlightNotInResults is returned when selecting a flight that the last search did not return
	ErrFlightNotInResults = errors.New("flight not in search results")
	// ErrValidation wraps request validation failures
	ErrValidation = errors.New("validation failed")
)

// DashboardService defines the operations exposed to the presentation layer
type DashboardService interface {
	Session(ctx context.Context) models.AuthSession
	Restore(ctx context.Context) (models.AuthSession, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthSession, error)
	Logout(ctx context.Context) (models.AuthSession, error)

	Search(ctx context.Context, filters models.SearchFilters) ([]models.Flight, error)
	View(ctx context.Context) models.DashboardView
	SelectFlight(ctx context.Context, flightID string) (models.DashboardView, error)
	ToggleSeat(ctx context.Context, seatID string) (models.DashboardView, error)
	BackToResults(ctx context.Context) (models.DashboardView, error)
	ProceedToConfirm(ctx context.Context) (models.DashboardView, error)
	CancelConfirmation(ctx context.Context) (models.DashboardView, error)
	Confirm(ctx context.Context, passengers []models.Passenger) (*models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
}

// Broadcaster pushes dashboard events to connected clients
type Broadcaster interface {
	BroadcastSession(session models.AuthSession)
	BroadcastView(t websocket.MessageType, view models.DashboardView)
	BroadcastBookingConfirmed(b models.Booking)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastSession(models.AuthSession)                       {}
func (nopBroadcaster) BroadcastView(websocket.MessageType, models.DashboardView) {}
func (nopBroadcaster) BroadcastBookingConfirmed(models.Booking)                  {}

// dashboardServiceImpl serializes every transition of the auth store and the
// booking workflow behind one mutex
type dashboardServiceImpl struct {
	mu       sync.Mutex
	auth     *auth.Store
	workflow *booking.Workflow
	events   Broadcaster
}

// NewDashboardService creates a DashboardService. A nil broadcaster disables push events.
func NewDashboardService(store *auth.Store, workflow *booking.Workflow, events Broadcaster) DashboardService {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &dashboardServiceImpl{
		auth:     store,
		workflow: workflow,
		events:   events,
	}
}

func (s *dashboardServiceImpl) Session(ctx context.Context) models.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.Session()
}

func (s *dashboardServiceImpl) Restore(ctx context.Context) (models.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.auth.Restore(ctx)
	if err != nil {
		return models.AuthSession{}, err
	}
	if session.IsAuthenticated {
		s.events.BroadcastSession(session)
	}
	return session, nil
}

func (s *dashboardServiceImpl) Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error) {
	if req.Username == "" {
		return models.AuthSession{}, fmt.Errorf("username is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return models.AuthSession{}, err
	}
	s.events.BroadcastSession(session)
	return session, nil
}

func (s *dashboardServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (models.AuthSession, error) {
	if strings.TrimSpace(req.Username) == "" {
		return models.AuthSession{}, fmt.Errorf("username is required: %w", ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return models.AuthSession{}, fmt.Errorf("a valid email is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return models.AuthSession{}, err
	}
	s.events.BroadcastSession(session)
	return session, nil
}

func (s *dashboardServiceImpl) Logout(ctx context.Context) (models.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.auth.Logout(ctx)
	session := s.auth.Session()
	s.events.BroadcastSession(session)
	return session, err
}

func (s *dashboardServiceImpl) Search(ctx context.Context, filters models.SearchFilters) ([]models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.workflow.Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.events.BroadcastView(websocket.MessageTypeSearchCompleted, s.workflow.View())
	return results, nil
}

func (s *dashboardServiceImpl) View(ctx context.Context) models.DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workflow.View()
}

func (s *dashboardServiceImpl) SelectFlight(ctx context.Context, flightID string) (models.DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workflow.State() == models.DashboardStateConfirming {
		return models.DashboardView{}, fmt.Errorf("select flight while confirming: %w", booking.ErrInvalidState)
	}
	if !s.workflow.SelectFlight(flightID) {
		return models.DashboardView{}, fmt.Errorf("flight %s: %w", flightID, ErrFlightNotInResults)
	}
	return s.changed(websocket.MessageTypeFlightSelected), nil
}

func (s *dashboardServiceImpl) ToggleSeat(ctx context.Context, seatID string) (models.DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.workflow.ToggleSeat(seatID); err != nil {
		return models.DashboardView{}, err
	}
	return s.changed(websocket.MessageTypeSeatsUpdated), nil
}

func (s *dashboardServiceImpl) BackToResults(ctx context.Context) (models.DashboardView, error) {
	return s.transition(s.workflow.BackToResults)
}

func (s *dashboardServiceImpl) ProceedToConfirm(ctx context.Context) (models.DashboardView, error) {
	return s.transition(s.workflow.ProceedToConfirm)
}

func (s *dashboardServiceImpl) CancelConfirmation(ctx context.Context) (models.DashboardView, error) {
	return s.transition(s.workflow.CancelConfirmation)
}

func (s *dashboardServiceImpl) Confirm(ctx context.Context, passengers []models.Passenger) (*models.Booking, error) {
	for i, p := range passengers {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("passenger %d name is required: %w", i+1, ErrValidation)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.workflow.Confirm(ctx, passengers)
	if err != nil {
		return nil, err
	}
	s.events.BroadcastBookingConfirmed(b)
	s.events.BroadcastView(websocket.MessageTypeStateChanged, s.workflow.View())
	return &b, nil
}

func (s *dashboardServiceImpl) Bookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workflow.History(ctx)
}

func (s *dashboardServiceImpl) transition(step func() error) (models.DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := step(); err != nil {
		return models.DashboardView{}, err
	}
	return s.changed(websocket.MessageTypeStateChanged), nil
}

// changed must be called with mu held
func (s *dashboardServiceImpl) changed(t websocket.MessageType) models.DashboardView {
	view := s.workflow.View()
	s.events.BroadcastView(t, view)
	return view
}
