package checker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carehome-backend/internal/config"
	"carehome-backend/internal/domain"
	"carehome-backend/internal/mocks"
)

func setupChecker(t *testing.T) (*Checker, *miniredis.Miniredis, *mocks.AlertService, *mocks.ResidentService, *mocks.FoodFluidService, *mocks.NightCheckService) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	alertSvc := new(mocks.AlertService)
	residentSvc := new(mocks.ResidentService)
	foodFluidSvc := new(mocks.FoodFluidService)
	nightCheckSvc := new(mocks.NightCheckService)

	cfg := &config.Config{CheckInterval: time.Minute, CheckerLockTTL: time.Minute}
	c := New(&CheckerServices{
		Alert:      alertSvc,
		Resident:   residentSvc,
		FoodFluid:  foodFluidSvc,
		NightCheck: nightCheckSvc,
	}, client, cfg, zap.NewNop())

	return c, mr, alertSvc, residentSvc, foodFluidSvc, nightCheckSvc
}

func TestChecker_SweepRaisesAlerts(t *testing.T) {
	c, mr, alertSvc, residentSvc, foodFluidSvc, nightCheckSvc := setupChecker(t)
	ctx := context.Background()

	res := domain.Resident{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		TeamID:         uuid.New(),
		IsActive:       true,
	}

	residentSvc.On("ListActive", ctx).Return([]domain.Resident{res}, nil).Once()
	foodFluidSvc.On("CheckAlerts", ctx, res.ID).Return(&domain.FoodFluidCheckResult{
		MissingPeriods: []domain.MissingPeriod{{Period: domain.PeriodMorning, ShouldAlert: true}},
		CurrentHour:    13,
	}, nil).Once()
	alertSvc.On("Create", ctx, mock.MatchedBy(func(in domain.CreateAlertInput) bool {
		return in.ResidentID == res.ID &&
			in.AlertType == domain.AlertFoodFluid &&
			in.Severity == domain.SeverityWarning &&
			in.TimePeriod != nil && *in.TimePeriod == domain.PeriodMorning
	})).Return(&domain.CreateAlertResult{AlertID: uuid.New(), Created: true}, nil).Once()
	nightCheckSvc.On("RaiseOverdueAlerts", ctx).Return(0, nil).Once()

	c.sweep(ctx)

	alertSvc.AssertExpectations(t)
	residentSvc.AssertExpectations(t)
	foodFluidSvc.AssertExpectations(t)
	nightCheckSvc.AssertExpectations(t)

	// Lock released after the sweep.
	assert.False(t, mr.Exists(lockKey))
}

func TestChecker_SweepSkipsWhenLockHeld(t *testing.T) {
	c, mr, alertSvc, residentSvc, _, nightCheckSvc := setupChecker(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(lockKey, "1"))

	c.sweep(ctx)

	residentSvc.AssertNotCalled(t, "ListActive", mock.Anything)
	alertSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	nightCheckSvc.AssertNotCalled(t, "RaiseOverdueAlerts", mock.Anything)

	// The other holder's lock is left alone.
	assert.True(t, mr.Exists(lockKey))
}

func TestChecker_ReleaseLeavesSuccessorLock(t *testing.T) {
	c, mr, _, _, _, _ := setupChecker(t)
	ctx := context.Background()

	acquired, err := c.acquireLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	// Simulate the TTL expiring mid-sweep and another instance taking over.
	mr.Del(lockKey)
	require.NoError(t, mr.Set(lockKey, "successor-token"))

	c.releaseLock(ctx)

	got, err := mr.Get(lockKey)
	require.NoError(t, err)
	assert.Equal(t, "successor-token", got)
}

func TestChecker_SweepWithoutRedisStillRuns(t *testing.T) {
	alertSvc := new(mocks.AlertService)
	residentSvc := new(mocks.ResidentService)
	foodFluidSvc := new(mocks.FoodFluidService)
	nightCheckSvc := new(mocks.NightCheckService)

	cfg := &config.Config{CheckInterval: time.Minute, CheckerLockTTL: time.Minute}
	c := New(&CheckerServices{
		Alert:      alertSvc,
		Resident:   residentSvc,
		FoodFluid:  foodFluidSvc,
		NightCheck: nightCheckSvc,
	}, nil, cfg, zap.NewNop())

	ctx := context.Background()
	residentSvc.On("ListActive", ctx).Return([]domain.Resident{}, nil).Once()
	nightCheckSvc.On("RaiseOverdueAlerts", ctx).Return(0, nil).Once()

	c.sweep(ctx)

	residentSvc.AssertExpectations(t)
	nightCheckSvc.AssertExpectations(t)
}
