package domain

import (
	"time"

	"github.com/google/uuid"
)

type IntakeStatus string

const (
	IntakeScheduled    IntakeStatus = "scheduled"
	IntakeAdministered IntakeStatus = "administered"
	IntakeRefused      IntakeStatus = "refused"
	IntakeMissed       IntakeStatus = "missed"
)

func (s IntakeStatus) Valid() bool {
	switch s {
	case IntakeScheduled, IntakeAdministered, IntakeRefused, IntakeMissed:
		return true
	}
	return false
}

// MedicationIntake is one scheduled administration of a medication.
type MedicationIntake struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	ResidentID     uuid.UUID    `json:"resident_id" db:"resident_id"`
	OrganizationID uuid.UUID    `json:"organization_id" db:"organization_id"`
	TeamID         uuid.UUID    `json:"team_id" db:"team_id"`
	MedicationName string       `json:"medication_name" db:"medication_name"`
	Dosage         string       `json:"dosage" db:"dosage"`
	ScheduledAt    time.Time    `json:"scheduled_at" db:"scheduled_at"`
	Status         IntakeStatus `json:"status" db:"status"`
	AdministeredBy *uuid.UUID   `json:"administered_by,omitempty" db:"administered_by"`
	AdministeredAt *time.Time   `json:"administered_at,omitempty" db:"administered_at"`
	Notes          *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

type UpdateIntakeStatusInput struct {
	Status IntakeStatus `json:"status"`
	Notes  *string      `json:"notes,omitempty"`
}
