package nightcheck

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

var ErrConfigurationNotFound = errors.New("night check configuration not found")

type Service interface {
	CreateConfiguration(ctx context.Context, residentID, organizationID, teamID uuid.UUID, input domain.CreateNightCheckConfigurationInput) (*domain.NightCheckConfiguration, error)
	RecordCheck(ctx context.Context, residentID, recordedBy uuid.UUID, input domain.RecordNightCheckInput) (*domain.NightCheckRecording, error)
	ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NightCheckRecording], error)

	// RaiseOverdueAlerts creates a night_check alert for every active
	// configuration whose latest recording is older than its interval.
	// Called from the background checker.
	RaiseOverdueAlerts(ctx context.Context) (int, error)

	SetClock(now func() time.Time)
}

type service struct {
	checkRepo repository.NightCheckRepository
	alertSvc  alert.Service
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(checkRepo repository.NightCheckRepository, alertSvc alert.Service, logger *zap.Logger) Service {
	return &service{
		checkRepo: checkRepo,
		alertSvc:  alertSvc,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *service) CreateConfiguration(ctx context.Context, residentID, organizationID, teamID uuid.UUID, input domain.CreateNightCheckConfigurationInput) (*domain.NightCheckConfiguration, error) {
	cfg := &domain.NightCheckConfiguration{
		ID:              uuid.New(),
		ResidentID:      residentID,
		OrganizationID:  organizationID,
		TeamID:          teamID,
		CheckType:       input.CheckType,
		IntervalMinutes: input.IntervalMinutes,
		IsActive:        true,
	}

	if err := s.checkRepo.CreateConfiguration(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to create night check configuration: %w", err)
	}
	return cfg, nil
}

// RecordCheck stores a completed check and closes any open missed-check
// alert for the same configuration.
func (s *service) RecordCheck(ctx context.Context, residentID, recordedBy uuid.UUID, input domain.RecordNightCheckInput) (*domain.NightCheckRecording, error) {
	cfg, err := s.checkRepo.GetConfiguration(ctx, input.ConfigurationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		return nil, ErrConfigurationNotFound
	}

	rec := &domain.NightCheckRecording{
		ID:              uuid.New(),
		ConfigurationID: cfg.ID,
		ResidentID:      residentID,
		OrganizationID:  cfg.OrganizationID,
		TeamID:          cfg.TeamID,
		CheckType:       input.CheckType,
		Status:          input.Status,
		Notes:           input.Notes,
		RecordedBy:      recordedBy,
		RecordedAt:      s.now(),
	}

	if err := s.checkRepo.CreateRecording(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create night check recording: %w", err)
	}

	resolved, err := s.alertSvc.AutoResolveNightCheck(ctx, residentID, input.CheckType, cfg.ID)
	if err != nil {
		s.logger.Warn("failed to auto-resolve night check alerts",
			zap.String("resident_id", residentID.String()), zap.Error(err))
	} else if resolved > 0 {
		s.logger.Info("night check recording resolved alerts",
			zap.String("configuration_id", cfg.ID.String()),
			zap.Int64("resolved", resolved))
	}

	return rec, nil
}

func (s *service) ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NightCheckRecording], error) {
	params.Validate()

	recs, total, err := s.checkRepo.ListRecordings(ctx, residentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.NightCheckRecording]{}, fmt.Errorf("failed to list recordings: %w", err)
	}
	return domain.NewPaginatedResponse(recs, params.Page, params.PageSize, total), nil
}

func (s *service) RaiseOverdueAlerts(ctx context.Context) (int, error) {
	cfgs, err := s.checkRepo.ListActiveConfigurations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list configurations: %w", err)
	}

	now := s.now()
	raised := 0
	for _, cfg := range cfgs {
		last, err := s.checkRepo.LastRecordingAt(ctx, cfg.ID)
		if err != nil {
			s.logger.Warn("failed to load last recording",
				zap.String("configuration_id", cfg.ID.String()), zap.Error(err))
			continue
		}

		overdue := last == nil || now.Sub(*last) > time.Duration(cfg.IntervalMinutes)*time.Minute
		if !overdue {
			continue
		}

		configID := cfg.ID
		result, err := s.alertSvc.Create(ctx, domain.CreateAlertInput{
			ResidentID:     cfg.ResidentID,
			OrganizationID: cfg.OrganizationID,
			TeamID:         cfg.TeamID,
			AlertType:      domain.AlertNightCheck,
			Severity:       domain.SeverityCritical,
			Title:          "Night check missed",
			Message:        fmt.Sprintf("No %s check recorded within %d minutes", cfg.CheckType, cfg.IntervalMinutes),
			Metadata: domain.AlertMetadata{
				CheckType:       cfg.CheckType,
				ConfigurationID: &configID,
			},
		})
		if err != nil {
			s.logger.Warn("failed to create night check alert",
				zap.String("configuration_id", cfg.ID.String()), zap.Error(err))
			continue
		}
		if result.Created {
			raised++
		}
	}

	return raised, nil
}
