package domain

import (
	"time"

	"github.com/google/uuid"
)

type Resident struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	OrganizationID uuid.UUID  `json:"organization_id" db:"organization_id"`
	TeamID         uuid.UUID  `json:"team_id" db:"team_id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	RoomNumber     *string    `json:"room_number,omitempty" db:"room_number"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateResidentInput struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	RoomNumber  *string    `json:"room_number,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}
