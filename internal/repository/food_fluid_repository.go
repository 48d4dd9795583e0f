package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carehome-backend/internal/domain"
)

type FoodFluidRepository interface {
	Create(ctx context.Context, log *domain.FoodFluidLog) error
	ListForDay(ctx context.Context, residentID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.FoodFluidLog, error)
}

type foodFluidRepository struct {
	db *sqlx.DB
}

func NewFoodFluidRepository(db *sqlx.DB) FoodFluidRepository {
	return &foodFluidRepository{db: db}
}

func (r *foodFluidRepository) Create(ctx context.Context, log *domain.FoodFluidLog) error {
	query := `
		INSERT INTO food_fluid_logs (id, resident_id, organization_id, team_id, section,
			food_intake, fluid_intake_ml, notes, recorded_by, log_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ResidentID, log.OrganizationID, log.TeamID, log.Section,
		log.FoodIntake, log.FluidIntakeML, log.Notes, log.RecordedBy, log.LogDate,
	).Scan(&log.CreatedAt)
}

func (r *foodFluidRepository) ListForDay(ctx context.Context, residentID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.FoodFluidLog, error) {
	var logs []domain.FoodFluidLog
	query := `
		SELECT * FROM food_fluid_logs
		WHERE resident_id = $1 AND log_date >= $2 AND log_date < $3
		ORDER BY created_at`

	err := r.db.SelectContext(ctx, &logs, query, residentID, dayStart, dayEnd)
	return logs, err
}
