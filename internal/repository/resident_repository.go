package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carehome-backend/internal/domain"
)

type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) ([]domain.Resident, int64, error)
	ListActive(ctx context.Context) ([]domain.Resident, error)
}

type residentRepository struct {
	db *sqlx.DB
}

func NewResidentRepository(db *sqlx.DB) ResidentRepository {
	return &residentRepository{db: db}
}

func (r *residentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	query := `
		INSERT INTO residents (id, organization_id, team_id, first_name, last_name, room_number, date_of_birth, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		resident.ID, resident.OrganizationID, resident.TeamID,
		resident.FirstName, resident.LastName, resident.RoomNumber,
		resident.DateOfBirth, resident.IsActive,
	).Scan(&resident.CreatedAt, &resident.UpdatedAt)
}

func (r *residentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	var resident domain.Resident
	query := `SELECT * FROM residents WHERE id = $1`

	err := r.db.GetContext(ctx, &resident, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) ([]domain.Resident, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM residents WHERE organization_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, organizationID); err != nil {
		return nil, 0, err
	}

	var residents []domain.Resident
	query := `
		SELECT * FROM residents
		WHERE organization_id = $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &residents, query, organizationID, params.PageSize, params.Offset())
	return residents, total, err
}

func (r *residentRepository) ListActive(ctx context.Context) ([]domain.Resident, error) {
	var residents []domain.Resident
	query := `SELECT * FROM residents WHERE is_active ORDER BY organization_id, last_name`

	err := r.db.SelectContext(ctx, &residents, query)
	return residents, err
}
