package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carehome-backend/internal/domain"
)

type ResidentRepository struct {
	mock.Mock
}

func (m *ResidentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	args := m.Called(ctx, resident)
	return args.Error(0)
}

func (m *ResidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resident), args.Error(1)
}

func (m *ResidentRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) ([]domain.Resident, int64, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Resident), args.Get(1).(int64), args.Error(2)
}

func (m *ResidentRepository) ListActive(ctx context.Context) ([]domain.Resident, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resident), args.Error(1)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, entityType, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
}

type FoodFluidRepository struct {
	mock.Mock
}

func (m *FoodFluidRepository) Create(ctx context.Context, log *domain.FoodFluidLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *FoodFluidRepository) ListForDay(ctx context.Context, residentID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.FoodFluidLog, error) {
	args := m.Called(ctx, residentID, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FoodFluidLog), args.Error(1)
}

type NightCheckRepository struct {
	mock.Mock
}

func (m *NightCheckRepository) CreateConfiguration(ctx context.Context, cfg *domain.NightCheckConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *NightCheckRepository) GetConfiguration(ctx context.Context, id uuid.UUID) (*domain.NightCheckConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NightCheckConfiguration), args.Error(1)
}

func (m *NightCheckRepository) ListActiveConfigurations(ctx context.Context) ([]domain.NightCheckConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NightCheckConfiguration), args.Error(1)
}

func (m *NightCheckRepository) CreateRecording(ctx context.Context, rec *domain.NightCheckRecording) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *NightCheckRepository) LastRecordingAt(ctx context.Context, configurationID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, configurationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *NightCheckRepository) ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.NightCheckRecording, int64, error) {
	args := m.Called(ctx, residentID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.NightCheckRecording), args.Get(1).(int64), args.Error(2)
}

type MedicationRepository struct {
	mock.Mock
}

func (m *MedicationRepository) CreateIntake(ctx context.Context, intake *domain.MedicationIntake) error {
	args := m.Called(ctx, intake)
	return args.Error(0)
}

func (m *MedicationRepository) GetIntake(ctx context.Context, id uuid.UUID) (*domain.MedicationIntake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicationIntake), args.Error(1)
}

func (m *MedicationRepository) UpdateIntakeStatus(ctx context.Context, id uuid.UUID, status domain.IntakeStatus, administeredBy *uuid.UUID, notes *string, now time.Time) error {
	args := m.Called(ctx, id, status, administeredBy, notes, now)
	return args.Error(0)
}

func (m *MedicationRepository) ListByResident(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.MedicationIntake, int64, error) {
	args := m.Called(ctx, residentID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.MedicationIntake), args.Get(1).(int64), args.Error(2)
}
