package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	StaffID        *uuid.UUID      `json:"staff_id,omitempty" db:"staff_id"`
	Action         string          `json:"action" db:"action"`
	EntityType     string          `json:"entity_type" db:"entity_type"`
	EntityID       uuid.UUID       `json:"entity_id" db:"entity_id"`
	Detail         json.RawMessage `json:"detail,omitempty" db:"detail"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

const (
	AuditEntityAlert = "alert"

	AuditActionAlertCreated  = "alert.created"
	AuditActionAlertResolved = "alert.resolved"
	AuditActionAlertsCleared = "alert.cleared_all"
)
