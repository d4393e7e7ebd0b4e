package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// TableService manages seating units. Occupancy itself is driven by the
// order and billing flows.
type TableService interface {
	Create(ctx context.Context, restaurantID uuid.UUID, number string) (*models.Table, error)
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error)
	UpdateNumber(ctx context.Context, restaurantID, id uuid.UUID, number string) (*models.Table, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type tableService struct {
	tableRepo repositories.TableRepository
}

func NewTableService(tableRepo repositories.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) Create(ctx context.Context, restaurantID uuid.UUID, number string) (*models.Table, error) {
	if number == "" {
		return nil, fmt.Errorf("table number is required: %w", common.ErrValidation)
	}
	table := &models.Table{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Number:       number,
		Status:       models.TableAvailable,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return table, nil
}

func (s *tableService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %s: %w", id, common.ErrNotFound)
	}
	return table, nil
}

func (s *tableService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error) {
	tables, err := s.tableRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) UpdateNumber(ctx context.Context, restaurantID, id uuid.UUID, number string) (*models.Table, error) {
	if number == "" {
		return nil, fmt.Errorf("table number is required: %w", common.ErrValidation)
	}
	table, err := s.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.tableRepo.UpdateNumber(ctx, restaurantID, id, number); err != nil {
		return nil, fmt.Errorf("update table: %w", err)
	}
	table.Number = number
	return table, nil
}

func (s *tableService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	table, err := s.GetByID(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if table.Status == models.TableOccupied {
		return fmt.Errorf("table %s is occupied: %w", table.Number, common.ErrConflict)
	}
	if err := s.tableRepo.Delete(ctx, restaurantID, id); err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return nil
}
