package foodfluid

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

var ErrInvalidSection = errors.New("invalid section")

type Service interface {
	// CheckAlerts derives which of today's elapsed periods still lack a log
	// entry for the resident. Read-only and safe to call repeatedly.
	CheckAlerts(ctx context.Context, residentID uuid.UUID) (*domain.FoodFluidCheckResult, error)
	CreateLog(ctx context.Context, residentID, organizationID, teamID, recordedBy uuid.UUID, input domain.CreateFoodFluidLogInput) (*domain.FoodFluidLog, error)
	ListForToday(ctx context.Context, residentID uuid.UUID) ([]domain.FoodFluidLog, error)

	SetClock(now func() time.Time)
}

type service struct {
	logRepo  repository.FoodFluidRepository
	alertSvc alert.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(logRepo repository.FoodFluidRepository, alertSvc alert.Service, logger *zap.Logger) Service {
	return &service{
		logRepo:  logRepo,
		alertSvc: alertSvc,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *service) CheckAlerts(ctx context.Context, residentID uuid.UUID) (*domain.FoodFluidCheckResult, error) {
	now := s.now()
	dayStart, dayEnd := domain.DayBounds(now)

	logs, err := s.logRepo.ListForDay(ctx, residentID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's logs: %w", err)
	}

	logged := make(map[domain.TimePeriod]bool, len(logs))
	for _, l := range logs {
		logged[l.Section] = true
	}

	return &domain.FoodFluidCheckResult{
		MissingPeriods: domain.DeriveMissingPeriods(logged, now),
		Logs:           logs,
		Today:          dayStart.Format("2006-01-02"),
		CurrentHour:    now.Hour(),
	}, nil
}

// CreateLog records an intake entry and closes any open food/fluid alert for
// the entry's period.
func (s *service) CreateLog(ctx context.Context, residentID, organizationID, teamID, recordedBy uuid.UUID, input domain.CreateFoodFluidLogInput) (*domain.FoodFluidLog, error) {
	if !input.Section.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSection, input.Section)
	}

	now := s.now()
	dayStart, _ := domain.DayBounds(now)

	log := &domain.FoodFluidLog{
		ID:             uuid.New(),
		ResidentID:     residentID,
		OrganizationID: organizationID,
		TeamID:         teamID,
		Section:        input.Section,
		FoodIntake:     input.FoodIntake,
		FluidIntakeML:  input.FluidIntakeML,
		Notes:          input.Notes,
		RecordedBy:     recordedBy,
		LogDate:        dayStart,
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create food/fluid log: %w", err)
	}

	resolved, err := s.alertSvc.AutoResolveFoodFluid(ctx, residentID, input.Section)
	if err != nil {
		// The log entry is saved; a stale alert is recoverable on the
		// next recording or by manual resolution.
		s.logger.Warn("failed to auto-resolve food/fluid alerts",
			zap.String("resident_id", residentID.String()), zap.Error(err))
	} else if resolved > 0 {
		s.logger.Info("food/fluid log resolved alerts",
			zap.String("resident_id", residentID.String()),
			zap.String("section", string(input.Section)),
			zap.Int64("resolved", resolved))
	}

	return log, nil
}

func (s *service) ListForToday(ctx context.Context, residentID uuid.UUID) ([]domain.FoodFluidLog, error) {
	dayStart, dayEnd := domain.DayBounds(s.now())
	return s.logRepo.ListForDay(ctx, residentID, dayStart, dayEnd)
}
