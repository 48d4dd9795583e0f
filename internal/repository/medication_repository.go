package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carehome-backend/internal/domain"
)

type MedicationRepository interface {
	CreateIntake(ctx context.Context, intake *domain.MedicationIntake) error
	GetIntake(ctx context.Context, id uuid.UUID) (*domain.MedicationIntake, error)
	UpdateIntakeStatus(ctx context.Context, id uuid.UUID, status domain.IntakeStatus, administeredBy *uuid.UUID, notes *string, now time.Time) error
	ListByResident(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.MedicationIntake, int64, error)
}

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) CreateIntake(ctx context.Context, intake *domain.MedicationIntake) error {
	query := `
		INSERT INTO medication_intakes (id, resident_id, organization_id, team_id,
			medication_name, dosage, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		intake.ID, intake.ResidentID, intake.OrganizationID, intake.TeamID,
		intake.MedicationName, intake.Dosage, intake.ScheduledAt, intake.Status, intake.Notes,
	).Scan(&intake.CreatedAt, &intake.UpdatedAt)
}

func (r *medicationRepository) GetIntake(ctx context.Context, id uuid.UUID) (*domain.MedicationIntake, error) {
	var intake domain.MedicationIntake
	query := `SELECT * FROM medication_intakes WHERE id = $1`

	err := r.db.GetContext(ctx, &intake, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intake, nil
}

// UpdateIntakeStatus records a status transition. Only an administered
// intake carries an administration timestamp; refused and missed clear it.
func (r *medicationRepository) UpdateIntakeStatus(ctx context.Context, id uuid.UUID, status domain.IntakeStatus, administeredBy *uuid.UUID, notes *string, now time.Time) error {
	var administeredAt *time.Time
	if status == domain.IntakeAdministered {
		administeredAt = &now
	}

	query := `
		UPDATE medication_intakes
		SET status = $2, administered_by = $3, administered_at = $4, notes = COALESCE($5, notes), updated_at = $6
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status, administeredBy, administeredAt, notes, now)
	return err
}

func (r *medicationRepository) ListByResident(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.MedicationIntake, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM medication_intakes WHERE resident_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, residentID); err != nil {
		return nil, 0, err
	}

	var intakes []domain.MedicationIntake
	query := `
		SELECT * FROM medication_intakes
		WHERE resident_id = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &intakes, query, residentID, params.PageSize, params.Offset())
	return intakes, total, err
}
