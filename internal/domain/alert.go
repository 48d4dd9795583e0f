package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertFoodFluid  AlertType = "food_fluid"
	AlertNightCheck AlertType = "night_check"
	AlertMedication AlertType = "medication"
	AlertActivity   AlertType = "activity"
	AlertVitalSigns AlertType = "vital_signs"
	AlertCarePlan   AlertType = "care_plan"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertFoodFluid, AlertNightCheck, AlertMedication, AlertActivity, AlertVitalSigns, AlertCarePlan:
		return true
	}
	return false
}

// PeriodScoped reports whether alerts of this type carry a TimePeriod.
func (t AlertType) PeriodScoped() bool {
	return t == AlertFoodFluid || t == AlertNightCheck
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Rank orders severities for display: critical before warning before info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// AlertMetadata carries the correlation keys auto-resolution matches on.
// Stored as JSONB; only the fields relevant to the alert's type are set.
type AlertMetadata struct {
	CheckType       string     `json:"check_type,omitempty"`
	ConfigurationID *uuid.UUID `json:"configuration_id,omitempty"`
	IntakeID        *uuid.UUID `json:"intake_id,omitempty"`
}

func (m AlertMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *AlertMetadata) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = AlertMetadata{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported metadata type %T", src)
}

type Alert struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	ResidentID     uuid.UUID     `json:"resident_id" db:"resident_id"`
	OrganizationID uuid.UUID     `json:"organization_id" db:"organization_id"`
	TeamID         uuid.UUID     `json:"team_id" db:"team_id"`
	AlertType      AlertType     `json:"alert_type" db:"alert_type"`
	Severity       Severity      `json:"severity" db:"severity"`
	Title          string        `json:"title" db:"title"`
	Message        string        `json:"message" db:"message"`
	TimePeriod     *TimePeriod   `json:"time_period,omitempty" db:"time_period"`
	Metadata       AlertMetadata `json:"metadata" db:"metadata"`
	Timestamp      time.Time     `json:"timestamp" db:"timestamp"`
	IsResolved     bool          `json:"is_resolved" db:"is_resolved"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
	ResolvedBy     *uuid.UUID    `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolutionNote *string       `json:"resolution_note,omitempty" db:"resolution_note"`
	AutoResolved   bool          `json:"auto_resolved" db:"auto_resolved"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

type CreateAlertInput struct {
	ResidentID     uuid.UUID     `json:"resident_id"`
	OrganizationID uuid.UUID     `json:"organization_id"`
	TeamID         uuid.UUID     `json:"team_id"`
	AlertType      AlertType     `json:"alert_type"`
	Severity       Severity      `json:"severity"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	TimePeriod     *TimePeriod   `json:"time_period,omitempty"`
	Metadata       AlertMetadata `json:"metadata"`
}

type CreateAlertResult struct {
	AlertID uuid.UUID `json:"alert_id"`
	Created bool      `json:"created"`
}

type ResolveAlertInput struct {
	ResolvedBy     *uuid.UUID `json:"resolved_by,omitempty"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	AutoResolved   bool       `json:"auto_resolved"`
}

// AlertCounts aggregates a resident's unresolved alerts by severity.
type AlertCounts struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}
