package nightcheck_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/mocks"
	"carehome-backend/internal/service/nightcheck"
)

var fixedNow = time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

func newService(checkRepo *mocks.NightCheckRepository, alertSvc *mocks.AlertService) nightcheck.Service {
	svc := nightcheck.NewService(checkRepo, alertSvc, zap.NewNop())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func TestNightCheckService_RecordCheck(t *testing.T) {
	ctx := context.Background()
	residentID := uuid.New()
	staffID := uuid.New()

	cfg := &domain.NightCheckConfiguration{
		ID:              uuid.New(),
		ResidentID:      residentID,
		OrganizationID:  uuid.New(),
		TeamID:          uuid.New(),
		CheckType:       "positional",
		IntervalMinutes: 120,
		IsActive:        true,
	}

	t.Run("recording resolves the matching missed-check alert", func(t *testing.T) {
		checkRepo := new(mocks.NightCheckRepository)
		alertSvc := new(mocks.AlertService)
		svc := newService(checkRepo, alertSvc)

		checkRepo.On("GetConfiguration", ctx, cfg.ID).Return(cfg, nil).Once()
		checkRepo.On("CreateRecording", ctx, mock.MatchedBy(func(r *domain.NightCheckRecording) bool {
			return r.ConfigurationID == cfg.ID && r.ResidentID == residentID && r.RecordedAt.Equal(fixedNow)
		})).Return(nil).Once()
		alertSvc.On("AutoResolveNightCheck", ctx, residentID, "positional", cfg.ID).Return(int64(1), nil).Once()

		rec, err := svc.RecordCheck(ctx, residentID, staffID, domain.RecordNightCheckInput{
			ConfigurationID: cfg.ID,
			CheckType:       "positional",
			Status:          "completed",
		})

		assert.NoError(t, err)
		assert.NotNil(t, rec)
		alertSvc.AssertExpectations(t)
	})

	t.Run("unknown configuration", func(t *testing.T) {
		checkRepo := new(mocks.NightCheckRepository)
		svc := newService(checkRepo, new(mocks.AlertService))

		id := uuid.New()
		checkRepo.On("GetConfiguration", ctx, id).Return(nil, nil).Once()

		_, err := svc.RecordCheck(ctx, residentID, staffID, domain.RecordNightCheckInput{ConfigurationID: id})

		assert.ErrorIs(t, err, nightcheck.ErrConfigurationNotFound)
	})
}

func TestNightCheckService_RaiseOverdueAlerts(t *testing.T) {
	ctx := context.Background()

	overdueCfg := domain.NightCheckConfiguration{
		ID:              uuid.New(),
		ResidentID:      uuid.New(),
		OrganizationID:  uuid.New(),
		TeamID:          uuid.New(),
		CheckType:       "positional",
		IntervalMinutes: 60,
		IsActive:        true,
	}
	currentCfg := domain.NightCheckConfiguration{
		ID:              uuid.New(),
		ResidentID:      uuid.New(),
		CheckType:       "breathing",
		IntervalMinutes: 60,
		IsActive:        true,
	}

	t.Run("raises for overdue configurations only", func(t *testing.T) {
		checkRepo := new(mocks.NightCheckRepository)
		alertSvc := new(mocks.AlertService)
		svc := newService(checkRepo, alertSvc)

		stale := fixedNow.Add(-90 * time.Minute)
		fresh := fixedNow.Add(-10 * time.Minute)

		checkRepo.On("ListActiveConfigurations", ctx).Return([]domain.NightCheckConfiguration{overdueCfg, currentCfg}, nil).Once()
		checkRepo.On("LastRecordingAt", ctx, overdueCfg.ID).Return(&stale, nil).Once()
		checkRepo.On("LastRecordingAt", ctx, currentCfg.ID).Return(&fresh, nil).Once()

		alertSvc.On("Create", ctx, mock.MatchedBy(func(in domain.CreateAlertInput) bool {
			return in.ResidentID == overdueCfg.ResidentID &&
				in.AlertType == domain.AlertNightCheck &&
				in.Severity == domain.SeverityCritical &&
				in.Metadata.CheckType == "positional" &&
				in.Metadata.ConfigurationID != nil && *in.Metadata.ConfigurationID == overdueCfg.ID
		})).Return(&domain.CreateAlertResult{AlertID: uuid.New(), Created: true}, nil).Once()

		raised, err := svc.RaiseOverdueAlerts(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, raised)
		alertSvc.AssertExpectations(t)
	})

	t.Run("never-recorded configuration is overdue", func(t *testing.T) {
		checkRepo := new(mocks.NightCheckRepository)
		alertSvc := new(mocks.AlertService)
		svc := newService(checkRepo, alertSvc)

		checkRepo.On("ListActiveConfigurations", ctx).Return([]domain.NightCheckConfiguration{overdueCfg}, nil).Once()
		checkRepo.On("LastRecordingAt", ctx, overdueCfg.ID).Return(nil, nil).Once()
		alertSvc.On("Create", ctx, mock.Anything).Return(&domain.CreateAlertResult{AlertID: uuid.New(), Created: true}, nil).Once()

		raised, err := svc.RaiseOverdueAlerts(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, raised)
	})

	t.Run("deduplicated creates do not count as raised", func(t *testing.T) {
		checkRepo := new(mocks.NightCheckRepository)
		alertSvc := new(mocks.AlertService)
		svc := newService(checkRepo, alertSvc)

		checkRepo.On("ListActiveConfigurations", ctx).Return([]domain.NightCheckConfiguration{overdueCfg}, nil).Once()
		checkRepo.On("LastRecordingAt", ctx, overdueCfg.ID).Return(nil, nil).Once()
		alertSvc.On("Create", ctx, mock.Anything).Return(&domain.CreateAlertResult{AlertID: uuid.New(), Created: false}, nil).Once()

		raised, err := svc.RaiseOverdueAlerts(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, raised)
	})
}
