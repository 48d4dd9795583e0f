package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Alert      AlertRepository
	Resident   ResidentRepository
	FoodFluid  FoodFluidRepository
	NightCheck NightCheckRepository
	Medication MedicationRepository
	AuditLog   AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Alert:      NewAlertRepository(db),
		Resident:   NewResidentRepository(db),
		FoodFluid:  NewFoodFluidRepository(db),
		NightCheck: NewNightCheckRepository(db),
		Medication: NewMedicationRepository(db),
		AuditLog:   NewAuditLogRepository(db),
	}
}
