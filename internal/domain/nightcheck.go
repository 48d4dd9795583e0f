package domain

import (
	"time"

	"github.com/google/uuid"
)

// NightCheckConfiguration schedules a recurring overnight check for a
// resident, e.g. a positional check every two hours.
type NightCheckConfiguration struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ResidentID      uuid.UUID `json:"resident_id" db:"resident_id"`
	OrganizationID  uuid.UUID `json:"organization_id" db:"organization_id"`
	TeamID          uuid.UUID `json:"team_id" db:"team_id"`
	CheckType       string    `json:"check_type" db:"check_type"`
	IntervalMinutes int       `json:"interval_minutes" db:"interval_minutes"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// NightCheckRecording is one completed check against a configuration.
type NightCheckRecording struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ConfigurationID uuid.UUID `json:"configuration_id" db:"configuration_id"`
	ResidentID      uuid.UUID `json:"resident_id" db:"resident_id"`
	OrganizationID  uuid.UUID `json:"organization_id" db:"organization_id"`
	TeamID          uuid.UUID `json:"team_id" db:"team_id"`
	CheckType       string    `json:"check_type" db:"check_type"`
	Status          string    `json:"status" db:"status"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	RecordedBy      uuid.UUID `json:"recorded_by" db:"recorded_by"`
	RecordedAt      time.Time `json:"recorded_at" db:"recorded_at"`
}

type RecordNightCheckInput struct {
	ConfigurationID uuid.UUID `json:"configuration_id"`
	CheckType       string    `json:"check_type"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
}

type CreateNightCheckConfigurationInput struct {
	CheckType       string `json:"check_type"`
	IntervalMinutes int    `json:"interval_minutes"`
}
