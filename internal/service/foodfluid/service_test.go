package foodfluid_test

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
	"carehome-backend/internal/service/foodfluid"
)

func TestFoodFluidService_CheckAlerts(t *testing.T) {
	ctx := context.Background()
	residentID := uuid.New()
	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	newService := func(logRepo *mocks.FoodFluidRepository, hour int) foodfluid.Service {
		svc := foodfluid.NewService(logRepo, new(mocks.AlertService), zap.NewNop())
		svc.SetClock(func() time.Time {
			return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
		})
		return svc
	}

	t.Run("no logs at 13:00", func(t *testing.T) {
		logRepo := new(mocks.FoodFluidRepository)
		svc := newService(logRepo, 13)

		logRepo.On("ListForDay", ctx, residentID, dayStart, dayEnd).Return([]domain.FoodFluidLog{}, nil).Once()

		result, err := svc.CheckAlerts(ctx, residentID)

		assert.NoError(t, err)
		assert.Equal(t, "2026-03-10", result.Today)
		assert.Equal(t, 13, result.CurrentHour)
		assert.Len(t, result.MissingPeriods, 1)
		assert.Equal(t, domain.PeriodMorning, result.MissingPeriods[0].Period)
		assert.True(t, result.MissingPeriods[0].ShouldAlert)
	})

	t.Run("no logs at 19:00", func(t *testing.T) {
		logRepo := new(mocks.FoodFluidRepository)
		svc := newService(logRepo, 19)

		logRepo.On("ListForDay", ctx, residentID, dayStart, dayEnd).Return([]domain.FoodFluidLog{}, nil).Once()

		result, err := svc.CheckAlerts(ctx, residentID)

		assert.NoError(t, err)
		periods := []domain.TimePeriod{result.MissingPeriods[0].Period, result.MissingPeriods[1].Period}
		assert.Equal(t, []domain.TimePeriod{domain.PeriodMorning, domain.PeriodAfternoon}, periods)
	})

	t.Run("morning log suppresses the morning gap", func(t *testing.T) {
		logRepo := new(mocks.FoodFluidRepository)
		svc := newService(logRepo, 19)

		logs := []domain.FoodFluidLog{{ID: uuid.New(), ResidentID: residentID, Section: domain.PeriodMorning}}
		logRepo.On("ListForDay", ctx, residentID, dayStart, dayEnd).Return(logs, nil).Once()

		result, err := svc.CheckAlerts(ctx, residentID)

		assert.NoError(t, err)
		assert.Len(t, result.MissingPeriods, 1)
		assert.Equal(t, domain.PeriodAfternoon, result.MissingPeriods[0].Period)
		assert.Equal(t, logs, result.Logs)
	})
}

func TestFoodFluidService_CreateLog(t *testing.T) {
	ctx := context.Background()
	residentID := uuid.New()
	orgID := uuid.New()
	teamID := uuid.New()
	staffID := uuid.New()

	t.Run("logging an entry resolves the matching alert", func(t *testing.T) {
		logRepo := new(mocks.FoodFluidRepository)
		alertSvc := new(mocks.AlertService)
		svc := foodfluid.NewService(logRepo, alertSvc, zap.NewNop())

		logRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.FoodFluidLog) bool {
			return l.ResidentID == residentID && l.Section == domain.PeriodMorning && l.RecordedBy == staffID
		})).Return(nil).Once()
		alertSvc.On("AutoResolveFoodFluid", ctx, residentID, domain.PeriodMorning).Return(int64(1), nil).Once()

		log, err := svc.CreateLog(ctx, residentID, orgID, teamID, staffID, domain.CreateFoodFluidLogInput{
			Section: domain.PeriodMorning,
		})

		assert.NoError(t, err)
		assert.NotNil(t, log)
		logRepo.AssertExpectations(t)
		alertSvc.AssertExpectations(t)
	})

	t.Run("auto-resolve failure does not fail the log write", func(t *testing.T) {
		logRepo := new(mocks.FoodFluidRepository)
		alertSvc := new(mocks.AlertService)
		svc := foodfluid.NewService(logRepo, alertSvc, zap.NewNop())

		logRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		alertSvc.On("AutoResolveFoodFluid", ctx, residentID, domain.PeriodEvening).Return(int64(0), assert.AnError).Once()

		log, err := svc.CreateLog(ctx, residentID, orgID, teamID, staffID, domain.CreateFoodFluidLogInput{
			Section: domain.PeriodEvening,
		})

		assert.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("rejects an unknown section", func(t *testing.T) {
		svc := foodfluid.NewService(new(mocks.FoodFluidRepository), new(mocks.AlertService), zap.NewNop())

		_, err := svc.CreateLog(ctx, residentID, orgID, teamID, staffID, domain.CreateFoodFluidLogInput{
			Section: "brunch",
		})

		assert.ErrorIs(t, err, foodfluid.ErrInvalidSection)
	})
}
