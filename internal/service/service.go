package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carehome-backend/internal/config"
	"carehome-backend/internal/repository"
	"carehome-backend/internal/service/alert"
	"carehome-backend/internal/service/email"
	"carehome-backend/internal/service/foodfluid"
	"carehome-backend/internal/service/medication"
	"carehome-backend/internal/service/nightcheck"
	"carehome-backend/internal/service/resident"
)

type Services struct {
	Alert      alert.Service
	Resident   resident.Service
	FoodFluid  foodfluid.Service
	NightCheck nightcheck.Service
	Medication medication.Service
	Email      email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	emailService := email.NewService(cfg)

	alertService := alert.NewService(repos.Alert, repos.Resident, repos.AuditLog, redis, logger)
	alertService.SetEscalationService(emailService)

	return &Services{
		Alert:      alertService,
		Resident:   resident.NewService(repos.Resident),
		FoodFluid:  foodfluid.NewService(repos.FoodFluid, alertService, logger),
		NightCheck: nightcheck.NewService(repos.NightCheck, alertService, logger),
		Medication: medication.NewService(repos.Medication, alertService, logger),
		Email:      emailService,
	}
}
