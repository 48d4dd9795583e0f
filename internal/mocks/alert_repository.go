package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/repository"
)

type AlertRepository struct {
	mock.Mock
}

func (m *AlertRepository) Insert(ctx context.Context, alert *domain.Alert) (bool, error) {
	args := m.Called(ctx, alert)
	return args.Bool(0), args.Error(1)
}

func (m *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertRepository) FindOpen(ctx context.Context, residentID uuid.UUID, alertType domain.AlertType, period *domain.TimePeriod, configurationID *uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, residentID, alertType, period, configurationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertRepository) ListUnresolvedByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *AlertRepository) ListUnresolvedByResidents(ctx context.Context, residentIDs []uuid.UUID) ([]domain.Alert, error) {
	args := m.Called(ctx, residentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *AlertRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) ([]domain.Alert, int64, error) {
	args := m.Called(ctx, organizationID, includeResolved, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Alert), args.Get(1).(int64), args.Error(2)
}

func (m *AlertRepository) Resolve(ctx context.Context, id uuid.UUID, input domain.ResolveAlertInput, now time.Time) error {
	args := m.Called(ctx, id, input, now)
	return args.Error(0)
}

func (m *AlertRepository) ResolveMatching(ctx context.Context, match repository.AlertMatch, note string, now time.Time) (int64, error) {
	args := m.Called(ctx, match, note, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertRepository) ClearUnresolved(ctx context.Context, organizationID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, organizationID, now)
	return args.Get(0).(int64), args.Error(1)
}
