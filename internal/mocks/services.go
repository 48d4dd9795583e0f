package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carehome-backend/internal/domain"
)

type ResidentService struct {
	mock.Mock
}

func (m *ResidentService) Create(ctx context.Context, organizationID, teamID uuid.UUID, input domain.CreateResidentInput) (*domain.Resident, error) {
	args := m.Called(ctx, organizationID, teamID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resident), args.Error(1)
}

func (m *ResidentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resident), args.Error(1)
}

func (m *ResidentService) List(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Resident], error) {
	args := m.Called(ctx, organizationID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Resident]), args.Error(1)
}

func (m *ResidentService) ListActive(ctx context.Context) ([]domain.Resident, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resident), args.Error(1)
}

type FoodFluidService struct {
	mock.Mock
}

func (m *FoodFluidService) CheckAlerts(ctx context.Context, residentID uuid.UUID) (*domain.FoodFluidCheckResult, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodFluidCheckResult), args.Error(1)
}

func (m *FoodFluidService) CreateLog(ctx context.Context, residentID, organizationID, teamID, recordedBy uuid.UUID, input domain.CreateFoodFluidLogInput) (*domain.FoodFluidLog, error) {
	args := m.Called(ctx, residentID, organizationID, teamID, recordedBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodFluidLog), args.Error(1)
}

func (m *FoodFluidService) ListForToday(ctx context.Context, residentID uuid.UUID) ([]domain.FoodFluidLog, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FoodFluidLog), args.Error(1)
}

func (m *FoodFluidService) SetClock(now func() time.Time) {
	m.Called(now)
}

type NightCheckService struct {
	mock.Mock
}

func (m *NightCheckService) CreateConfiguration(ctx context.Context, residentID, organizationID, teamID uuid.UUID, input domain.CreateNightCheckConfigurationInput) (*domain.NightCheckConfiguration, error) {
	args := m.Called(ctx, residentID, organizationID, teamID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NightCheckConfiguration), args.Error(1)
}

func (m *NightCheckService) RecordCheck(ctx context.Context, residentID, recordedBy uuid.UUID, input domain.RecordNightCheckInput) (*domain.NightCheckRecording, error) {
	args := m.Called(ctx, residentID, recordedBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NightCheckRecording), args.Error(1)
}

func (m *NightCheckService) ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NightCheckRecording], error) {
	args := m.Called(ctx, residentID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.NightCheckRecording]), args.Error(1)
}

func (m *NightCheckService) RaiseOverdueAlerts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *NightCheckService) SetClock(now func() time.Time) {
	m.Called(now)
}
