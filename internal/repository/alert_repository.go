package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"carehome-backend/internal/domain"
)

// AlertMatch selects the open alerts an auto-resolve call should close.
// ResidentID and AlertType are always required; exactly the correlation
// fields relevant to the alert type are set.
type AlertMatch struct {
	ResidentID      uuid.UUID
	AlertType       domain.AlertType
	TimePeriod      *domain.TimePeriod
	CheckType       *string
	ConfigurationID *uuid.UUID
	IntakeID        *uuid.UUID
}

type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.Alert) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	FindOpen(ctx context.Context, residentID uuid.UUID, alertType domain.AlertType, period *domain.TimePeriod, configurationID *uuid.UUID) (*domain.Alert, error)
	ListUnresolvedByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error)
	ListUnresolvedByResidents(ctx context.Context, residentIDs []uuid.UUID) ([]domain.Alert, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) ([]domain.Alert, int64, error)
	Resolve(ctx context.Context, id uuid.UUID, input domain.ResolveAlertInput, now time.Time) error
	ResolveMatching(ctx context.Context, match AlertMatch, note string, now time.Time) (int64, error)
	ClearUnresolved(ctx context.Context, organizationID uuid.UUID, now time.Time) (int64, error)
}

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{db: db}
}

// Insert persists a new alert. The partial unique index on
// (resident_id, alert_type, time_period, configuration) over unresolved
// rows makes the dedup invariant hold even when two checks race: the
// loser's insert is a no-op and Insert reports false.
func (r *alertRepository) Insert(ctx context.Context, alert *domain.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (id, resident_id, organization_id, team_id, alert_type, severity,
			title, message, time_period, metadata, timestamp, is_resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)
		ON CONFLICT (resident_id, alert_type, (COALESCE(time_period, '')), (COALESCE(metadata->>'configuration_id', ''))) WHERE NOT is_resolved
		DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		alert.ID, alert.ResidentID, alert.OrganizationID, alert.TeamID,
		alert.AlertType, alert.Severity, alert.Title, alert.Message,
		alert.TimePeriod, alert.Metadata, alert.Timestamp,
	).Scan(&alert.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	var alert domain.Alert
	query := `SELECT * FROM alerts WHERE id = $1`

	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// FindOpen looks up the unresolved alert occupying the dedup slot. The
// conditions mirror the partial unique index exactly, nil components
// matching its empty buckets.
func (r *alertRepository) FindOpen(ctx context.Context, residentID uuid.UUID, alertType domain.AlertType, period *domain.TimePeriod, configurationID *uuid.UUID) (*domain.Alert, error) {
	conditions := []string{"resident_id = $1", "alert_type = $2", "NOT is_resolved"}
	args := []interface{}{residentID, alertType}

	if period != nil {
		args = append(args, *period)
		conditions = append(conditions, fmt.Sprintf("time_period = $%d", len(args)))
	} else {
		conditions = append(conditions, "time_period IS NULL")
	}
	if configurationID != nil {
		args = append(args, configurationID.String())
		conditions = append(conditions, fmt.Sprintf("metadata->>'configuration_id' = $%d", len(args)))
	} else {
		conditions = append(conditions, "metadata->>'configuration_id' IS NULL")
	}

	query := `SELECT * FROM alerts WHERE ` + strings.Join(conditions, " AND ") + ` LIMIT 1`

	var alert domain.Alert
	err := r.db.GetContext(ctx, &alert, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) ListUnresolvedByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error) {
	var alerts []domain.Alert
	query := `
		SELECT * FROM alerts
		WHERE resident_id = $1 AND NOT is_resolved
		ORDER BY timestamp DESC`

	err := r.db.SelectContext(ctx, &alerts, query, residentID)
	return alerts, err
}

// ListUnresolvedByResidents fetches every unresolved alert for the given
// residents in one query; callers partition the result per resident.
func (r *alertRepository) ListUnresolvedByResidents(ctx context.Context, residentIDs []uuid.UUID) ([]domain.Alert, error) {
	ids := make([]string, len(residentIDs))
	for i, id := range residentIDs {
		ids[i] = id.String()
	}

	var alerts []domain.Alert
	query := `
		SELECT * FROM alerts
		WHERE NOT is_resolved AND resident_id = ANY($1)
		ORDER BY timestamp DESC`

	err := r.db.SelectContext(ctx, &alerts, query, pq.Array(ids))
	return alerts, err
}

func (r *alertRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) ([]domain.Alert, int64, error) {
	params.Validate()

	where := `WHERE organization_id = $1 AND NOT is_resolved`
	if includeResolved {
		where = `WHERE organization_id = $1`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM alerts ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, organizationID); err != nil {
		return nil, 0, err
	}

	// Severity buckets must order in the database; sorting the returned
	// page alone would let newer infos displace older criticals across
	// page boundaries.
	var alerts []domain.Alert
	query := `
		SELECT * FROM alerts ` + where + `
		ORDER BY CASE severity WHEN 'critical' THEN 0 WHEN 'warning' THEN 1 ELSE 2 END, timestamp DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &alerts, query, organizationID, params.PageSize, params.Offset())
	return alerts, total, err
}

// Resolve marks the alert resolved unconditionally. Resolving an already
// resolved alert just overwrites the same audit fields.
func (r *alertRepository) Resolve(ctx context.Context, id uuid.UUID, input domain.ResolveAlertInput, now time.Time) error {
	query := `
		UPDATE alerts
		SET is_resolved = true, resolved_at = $2, resolved_by = $3, resolution_note = $4, auto_resolved = $5
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, now, input.ResolvedBy, input.ResolutionNote, input.AutoResolved)
	return err
}

func (r *alertRepository) ResolveMatching(ctx context.Context, match AlertMatch, note string, now time.Time) (int64, error) {
	conditions := []string{"resident_id = $1", "alert_type = $2", "NOT is_resolved"}
	args := []interface{}{match.ResidentID, match.AlertType}

	if match.TimePeriod != nil {
		args = append(args, *match.TimePeriod)
		conditions = append(conditions, fmt.Sprintf("time_period = $%d", len(args)))
	}
	if match.CheckType != nil {
		args = append(args, *match.CheckType)
		conditions = append(conditions, fmt.Sprintf("metadata->>'check_type' = $%d", len(args)))
	}
	if match.ConfigurationID != nil {
		args = append(args, match.ConfigurationID.String())
		conditions = append(conditions, fmt.Sprintf("metadata->>'configuration_id' = $%d", len(args)))
	}
	if match.IntakeID != nil {
		args = append(args, match.IntakeID.String())
		conditions = append(conditions, fmt.Sprintf("metadata->>'intake_id' = $%d", len(args)))
	}

	args = append(args, now)
	tsArg := len(args)
	args = append(args, note)
	noteArg := len(args)

	query := fmt.Sprintf(`
		UPDATE alerts
		SET is_resolved = true, resolved_at = $%d, resolution_note = $%d, auto_resolved = true
		WHERE %s`, tsArg, noteArg, strings.Join(conditions, " AND "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *alertRepository) ClearUnresolved(ctx context.Context, organizationID uuid.UUID, now time.Time) (int64, error) {
	query := `
		UPDATE alerts
		SET is_resolved = true, resolved_at = $2, resolution_note = 'Cleared by administrator', auto_resolved = false
		WHERE organization_id = $1 AND NOT is_resolved`

	res, err := r.db.ExecContext(ctx, query, organizationID, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
