package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carehome-backend/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, organization_id, staff_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.OrganizationID, log.StaffID, log.Action, log.EntityType, log.EntityID, log.Detail,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, entityType, entityID); err != nil {
		return nil, 0, err
	}

	var logs []domain.AuditLog
	query := `
		SELECT * FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	err := r.db.SelectContext(ctx, &logs, query, entityType, entityID, params.PageSize, params.Offset())
	return logs, total, err
}

// WriteAuditLog marshals detail and persists one audit row. Failures are the
// caller's to handle; alert mutations log and continue rather than fail the
// request over a missing audit row.
func WriteAuditLog(ctx context.Context, repo AuditLogRepository, organizationID uuid.UUID, staffID *uuid.UUID, action, entityType string, entityID uuid.UUID, detail interface{}) error {
	detailJSON, _ := json.Marshal(detail)

	return repo.Create(ctx, &domain.AuditLog{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		StaffID:        staffID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Detail:         detailJSON,
	})
}
