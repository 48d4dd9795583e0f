package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/service/email"
)

type AlertService struct {
	mock.Mock
}

func (m *AlertService) Create(ctx context.Context, input domain.CreateAlertInput) (*domain.CreateAlertResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateAlertResult), args.Error(1)
}

func (m *AlertService) Resolve(ctx context.Context, alertID uuid.UUID, input domain.ResolveAlertInput) error {
	args := m.Called(ctx, alertID, input)
	return args.Error(0)
}

func (m *AlertService) AutoResolveFoodFluid(ctx context.Context, residentID uuid.UUID, period domain.TimePeriod) (int64, error) {
	args := m.Called(ctx, residentID, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) AutoResolveNightCheck(ctx context.Context, residentID uuid.UUID, checkType string, configurationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, residentID, checkType, configurationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) AutoResolveMedication(ctx context.Context, residentID uuid.UUID, intakeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, residentID, intakeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *AlertService) CountsForResident(ctx context.Context, residentID uuid.UUID) (domain.AlertCounts, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).(domain.AlertCounts), args.Error(1)
}

func (m *AlertService) CountsForResidents(ctx context.Context, residentIDs []uuid.UUID) (map[uuid.UUID]domain.AlertCounts, error) {
	args := m.Called(ctx, residentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.AlertCounts), args.Error(1)
}

func (m *AlertService) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Alert], error) {
	args := m.Called(ctx, organizationID, includeResolved, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Alert]), args.Error(1)
}

func (m *AlertService) ClearAllUnresolved(ctx context.Context, organizationID uuid.UUID, staffID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, organizationID, staffID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) SetEscalationService(svc email.Service) {
	m.Called(svc)
}

func (m *AlertService) SetClock(now func() time.Time) {
	m.Called(now)
}
