package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carehome-backend/internal/config"
	"carehome-backend/internal/domain"
	"carehome-backend/internal/service/alert"
	"carehome-backend/internal/service/foodfluid"
	"carehome-backend/internal/service/nightcheck"
	"carehome-backend/internal/service/resident"
)

const lockKey = "alerts:checker:lock"

// releaseLockScript deletes the lock only while it still holds this
// instance's token. A sweep that outlives the lock TTL must not delete a
// lock another instance has since acquired.
var releaseLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Checker periodically derives compliance gaps and materializes them as
// alerts through the alert service's internal create path. A Redis lock
// keeps concurrent instances from running the same sweep; the dedup
// invariant in the alert store covers the window where the lock expires
// mid-run.
type Checker struct {
	alertSvc      alert.Service
	residentSvc   resident.Service
	foodFluidSvc  foodfluid.Service
	nightCheckSvc nightcheck.Service
	redis         *redis.Client
	logger        *zap.Logger
	interval      time.Duration
	lockTTL       time.Duration
	lockToken     string
}

func New(services *CheckerServices, redis *redis.Client, cfg *config.Config, logger *zap.Logger) *Checker {
	return &Checker{
		alertSvc:      services.Alert,
		residentSvc:   services.Resident,
		foodFluidSvc:  services.FoodFluid,
		nightCheckSvc: services.NightCheck,
		redis:         redis,
		logger:        logger,
		interval:      cfg.CheckInterval,
		lockTTL:       cfg.CheckerLockTTL,
	}
}

// CheckerServices narrows the service container to what the checker uses.
type CheckerServices struct {
	Alert      alert.Service
	Resident   resident.Service
	FoodFluid  foodfluid.Service
	NightCheck nightcheck.Service
}

// Run blocks until ctx is done, sweeping every interval.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("compliance checker started", zap.Duration("interval", c.interval))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("compliance checker stopped")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Checker) sweep(ctx context.Context) {
	acquired, err := c.acquireLock(ctx)
	if err != nil {
		c.logger.Warn("failed to acquire checker lock", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer c.releaseLock(ctx)

	foodFluidRaised := c.sweepFoodFluid(ctx)

	nightCheckRaised, err := c.nightCheckSvc.RaiseOverdueAlerts(ctx)
	if err != nil {
		c.logger.Warn("night check sweep failed", zap.Error(err))
	}

	if foodFluidRaised > 0 || nightCheckRaised > 0 {
		c.logger.Info("sweep raised alerts",
			zap.Int("food_fluid", foodFluidRaised),
			zap.Int("night_check", nightCheckRaised))
	}
}

// sweepFoodFluid raises a warning alert for every elapsed period a resident
// has no log entry for. Existing open alerts dedupe inside Create.
func (c *Checker) sweepFoodFluid(ctx context.Context) int {
	residents, err := c.residentSvc.ListActive(ctx)
	if err != nil {
		c.logger.Warn("failed to list active residents", zap.Error(err))
		return 0
	}

	raised := 0
	for _, res := range residents {
		check, err := c.foodFluidSvc.CheckAlerts(ctx, res.ID)
		if err != nil {
			c.logger.Warn("food/fluid check failed",
				zap.String("resident_id", res.ID.String()), zap.Error(err))
			continue
		}

		for _, missing := range check.MissingPeriods {
			if !missing.ShouldAlert {
				continue
			}

			period := missing.Period
			result, err := c.alertSvc.Create(ctx, domain.CreateAlertInput{
				ResidentID:     res.ID,
				OrganizationID: res.OrganizationID,
				TeamID:         res.TeamID,
				AlertType:      domain.AlertFoodFluid,
				Severity:       domain.SeverityWarning,
				Title:          "Food/fluid intake not logged",
				Message:        fmt.Sprintf("No food or fluid intake recorded for the %s period", period),
				TimePeriod:     &period,
			})
			if err != nil {
				c.logger.Warn("failed to create food/fluid alert",
					zap.String("resident_id", res.ID.String()), zap.Error(err))
				continue
			}
			if result.Created {
				raised++
			}
		}
	}

	return raised
}

func (c *Checker) acquireLock(ctx context.Context) (bool, error) {
	if c.redis == nil {
		return true, nil
	}

	token := uuid.NewString()
	acquired, err := c.redis.SetNX(ctx, lockKey, token, c.lockTTL).Result()
	if err != nil {
		return false, err
	}
	if acquired {
		c.lockToken = token
	}
	return acquired, nil
}

func (c *Checker) releaseLock(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := releaseLockScript.Run(ctx, c.redis, []string{lockKey}, c.lockToken).Err(); err != nil {
		c.logger.Warn("failed to release checker lock", zap.Error(err))
	}
}
