package resident

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/repository"
)

var ErrResidentNotFound = errors.New("resident not found")

type Service interface {
	Create(ctx context.Context, organizationID, teamID uuid.UUID, input domain.CreateResidentInput) (*domain.Resident, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error)
	List(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Resident], error)
	ListActive(ctx context.Context) ([]domain.Resident, error)
}

type service struct {
	residentRepo repository.ResidentRepository
}

func NewService(residentRepo repository.ResidentRepository) Service {
	return &service{residentRepo: residentRepo}
}

func (s *service) Create(ctx context.Context, organizationID, teamID uuid.UUID, input domain.CreateResidentInput) (*domain.Resident, error) {
	resident := &domain.Resident{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		TeamID:         teamID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		RoomNumber:     input.RoomNumber,
		DateOfBirth:    input.DateOfBirth,
		IsActive:       true,
	}

	if err := s.residentRepo.Create(ctx, resident); err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}
	return resident, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	resident, err := s.residentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resident: %w", err)
	}
	if resident == nil {
		return nil, ErrResidentNotFound
	}
	return resident, nil
}

func (s *service) List(ctx context.Context, organizationID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Resident], error) {
	params.Validate()

	residents, total, err := s.residentRepo.ListByOrganization(ctx, organizationID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Resident]{}, fmt.Errorf("failed to list residents: %w", err)
	}
	return domain.NewPaginatedResponse(residents, params.Page, params.PageSize, total), nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.Resident, error) {
	return s.residentRepo.ListActive(ctx)
}
