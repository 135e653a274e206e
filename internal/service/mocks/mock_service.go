package mocks

import (
	"context"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Session(ctx context.Context) models.AuthSession {
	args := m.Called(ctx)
	return args.Get(0).(models.AuthSession)
}

func (m *MockDashboardService) Restore(ctx context.Context) (models.AuthSession, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AuthSession), args.Error(1)
}

func (m *MockDashboardService) Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AuthSession), args.Error(1)
}

func (m *MockDashboardService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AuthSession), args.Error(1)
}

func (m *MockDashboardService) Logout(ctx context.Context) (models.AuthSession, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AuthSession), args.Error(1)
}

func (m *MockDashboardService) Search(ctx context.Context, filters models.SearchFilters) ([]models.Flight, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockDashboardService) View(ctx context.Context) models.DashboardView {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardView)
}

func (m *MockDashboardService) SelectFlight(ctx context.Context, flightID string) (models.DashboardView, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(models.DashboardView), args.Error(1)
}

func (m *MockDashboardService) ToggleSeat(ctx context.Context, seatID string) (models.DashboardView, error) {
	args := m.Called(ctx, seatID)
	return args.Get(0).(models.DashboardView), args.Error(1)
}

func (m *MockDashboardService) BackToResults(ctx context.Context) (models.DashboardView, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardView), args.Error(1)
}

func (m *MockDashboardService) ProceedToConfirm(ctx context.Context) (models.DashboardView, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardView), args.Error(1)
}

func (m *MockDashboardService) CancelConfirmation(ctx context.Context) (models.DashboardView, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Confirm(ctx context.Context, passengers []models.Passenger) (*models.Booking, error) {
	args := m.Called(ctx, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockDashboardService) Bookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
