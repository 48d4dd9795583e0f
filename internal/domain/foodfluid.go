package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoodFluidLog is one recorded intake entry, tagged with the daily section
// it belongs to. LogDate is the calendar day the entry counts toward.
type FoodFluidLog struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ResidentID     uuid.UUID  `json:"resident_id" db:"resident_id"`
	OrganizationID uuid.UUID  `json:"organization_id" db:"organization_id"`
	TeamID         uuid.UUID  `json:"team_id" db:"team_id"`
	Section        TimePeriod `json:"section" db:"section"`
	FoodIntake     *string    `json:"food_intake,omitempty" db:"food_intake"`
	FluidIntakeML  *int       `json:"fluid_intake_ml,omitempty" db:"fluid_intake_ml"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	RecordedBy     uuid.UUID  `json:"recorded_by" db:"recorded_by"`
	LogDate        time.Time  `json:"log_date" db:"log_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

type CreateFoodFluidLogInput struct {
	Section       TimePeriod `json:"section"`
	FoodIntake    *string    `json:"food_intake,omitempty"`
	FluidIntakeML *int       `json:"fluid_intake_ml,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// FoodFluidCheckResult mirrors what the missing-period derivation saw, so
// callers (and the scheduler) can act on it without re-querying.
type FoodFluidCheckResult struct {
	MissingPeriods []MissingPeriod `json:"missing_periods"`
	Logs           []FoodFluidLog  `json:"logs"`
	Today          string          `json:"today"`
	CurrentHour    int             `json:"current_hour"`
}
