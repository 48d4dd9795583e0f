package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/repository"
	"carehome-backend/internal/service/alert"
)

var (
	ErrIntakeNotFound = errors.New("medication intake not found")
	ErrInvalidStatus  = errors.New("invalid intake status")
)

type Service interface {
	CreateIntake(ctx context.Context, residentID, organizationID, teamID uuid.UUID, medicationName, dosage string, scheduledAt time.Time) (*domain.MedicationIntake, error)
	UpdateIntakeStatus(ctx context.Context, intakeID, staffID uuid.UUID, input domain.UpdateIntakeStatusInput) (*domain.MedicationIntake, error)
	ListByResident(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.MedicationIntake], error)

	SetClock(now func() time.Time)
}

type service struct {
	medRepo  repository.MedicationRepository
	alertSvc alert.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(medRepo repository.MedicationRepository, alertSvc alert.Service, logger *zap.Logger) Service {
	return &service{
		medRepo:  medRepo,
		alertSvc: alertSvc,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *service) CreateIntake(ctx context.Context, residentID, organizationID, teamID uuid.UUID, medicationName, dosage string, scheduledAt time.Time) (*domain.MedicationIntake, error) {
	intake := &domain.MedicationIntake{
		ID:             uuid.New(),
		ResidentID:     residentID,
		OrganizationID: organizationID,
		TeamID:         teamID,
		MedicationName: medicationName,
		Dosage:         dosage,
		ScheduledAt:    scheduledAt,
		Status:         domain.IntakeScheduled,
	}

	if err := s.medRepo.CreateIntake(ctx, intake); err != nil {
		return nil, fmt.Errorf("failed to create medication intake: %w", err)
	}
	return intake, nil
}

// UpdateIntakeStatus moves an intake through its lifecycle. Administering an
// intake closes any open medication alert correlated to it.
func (s *service) UpdateIntakeStatus(ctx context.Context, intakeID, staffID uuid.UUID, input domain.UpdateIntakeStatusInput) (*domain.MedicationIntake, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}

	intake, err := s.medRepo.GetIntake(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake: %w", err)
	}
	if intake == nil {
		return nil, ErrIntakeNotFound
	}

	now := s.now()
	var administeredBy *uuid.UUID
	if input.Status == domain.IntakeAdministered {
		administeredBy = &staffID
	}

	if err := s.medRepo.UpdateIntakeStatus(ctx, intakeID, input.Status, administeredBy, input.Notes, now); err != nil {
		return nil, fmt.Errorf("failed to update intake status: %w", err)
	}

	if input.Status == domain.IntakeAdministered {
		resolved, err := s.alertSvc.AutoResolveMedication(ctx, intake.ResidentID, intakeID)
		if err != nil {
			s.logger.Warn("failed to auto-resolve medication alerts",
				zap.String("intake_id", intakeID.String()), zap.Error(err))
		} else if resolved > 0 {
			s.logger.Info("intake update resolved alerts",
				zap.String("intake_id", intakeID.String()),
				zap.Int64("resolved", resolved))
		}
	}

	return s.medRepo.GetIntake(ctx, intakeID)
}

func (s *service) ListByResident(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.MedicationIntake], error) {
	params.Validate()

	intakes, total, err := s.medRepo.ListByResident(ctx, residentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.MedicationIntake]{}, fmt.Errorf("failed to list intakes: %w", err)
	}
	return domain.NewPaginatedResponse(intakes, params.Page, params.PageSize, total), nil
}
