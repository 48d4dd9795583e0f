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

type NightCheckRepository interface {
	CreateConfiguration(ctx context.Context, cfg *domain.NightCheckConfiguration) error
	GetConfiguration(ctx context.Context, id uuid.UUID) (*domain.NightCheckConfiguration, error)
	ListActiveConfigurations(ctx context.Context) ([]domain.NightCheckConfiguration, error)
	CreateRecording(ctx context.Context, rec *domain.NightCheckRecording) error
	LastRecordingAt(ctx context.Context, configurationID uuid.UUID) (*time.Time, error)
	ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.NightCheckRecording, int64, error)
}

type nightCheckRepository struct {
	db *sqlx.DB
}

func NewNightCheckRepository(db *sqlx.DB) NightCheckRepository {
	return &nightCheckRepository{db: db}
}

func (r *nightCheckRepository) CreateConfiguration(ctx context.Context, cfg *domain.NightCheckConfiguration) error {
	query := `
		INSERT INTO night_check_configurations (id, resident_id, organization_id, team_id, check_type, interval_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		cfg.ID, cfg.ResidentID, cfg.OrganizationID, cfg.TeamID,
		cfg.CheckType, cfg.IntervalMinutes, cfg.IsActive,
	).Scan(&cfg.CreatedAt)
}

func (r *nightCheckRepository) GetConfiguration(ctx context.Context, id uuid.UUID) (*domain.NightCheckConfiguration, error) {
	var cfg domain.NightCheckConfiguration
	query := `SELECT * FROM night_check_configurations WHERE id = $1`

	err := r.db.GetContext(ctx, &cfg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *nightCheckRepository) ListActiveConfigurations(ctx context.Context) ([]domain.NightCheckConfiguration, error) {
	var cfgs []domain.NightCheckConfiguration
	query := `SELECT * FROM night_check_configurations WHERE is_active`

	err := r.db.SelectContext(ctx, &cfgs, query)
	return cfgs, err
}

func (r *nightCheckRepository) CreateRecording(ctx context.Context, rec *domain.NightCheckRecording) error {
	query := `
		INSERT INTO night_check_recordings (id, configuration_id, resident_id, organization_id, team_id,
			check_type, status, notes, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.ConfigurationID, rec.ResidentID, rec.OrganizationID, rec.TeamID,
		rec.CheckType, rec.Status, rec.Notes, rec.RecordedBy, rec.RecordedAt,
	)
	return err
}

func (r *nightCheckRepository) LastRecordingAt(ctx context.Context, configurationID uuid.UUID) (*time.Time, error) {
	var at sql.NullTime
	query := `SELECT MAX(recorded_at) FROM night_check_recordings WHERE configuration_id = $1`

	if err := r.db.GetContext(ctx, &at, query, configurationID); err != nil {
		return nil, err
	}
	if !at.Valid {
		return nil, nil
	}
	return &at.Time, nil
}

func (r *nightCheckRepository) ListRecordings(ctx context.Context, residentID uuid.UUID, params domain.PaginationParams) ([]domain.NightCheckRecording, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM night_check_recordings WHERE resident_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, residentID); err != nil {
		return nil, 0, err
	}

	var recs []domain.NightCheckRecording
	query := `
		SELECT * FROM night_check_recordings
		WHERE resident_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &recs, query, residentID, params.PageSize, params.Offset())
	return recs, total, err
}
