package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// StockService is the inventory ledger's CRUD surface. Order-driven debits
// and credits go through the transactional order paths, not here.
type StockService interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Stock, error)
	List(ctx context.Context, restaurantID uuid.UUID, pageNumber, pageSize int) (*models.StockPage, error)
	Adjust(ctx context.Context, restaurantID, id uuid.UUID, change int) (*models.Stock, error)
}

type stockService struct {
	stockRepo repositories.StockRepository
}

func NewStockService(stockRepo repositories.StockRepository) StockService {
	return &stockService{stockRepo: stockRepo}
}

func (s *stockService) Create(ctx context.Context, stock *models.Stock) error {
	if stock.DrinkName == "" {
		return fmt.Errorf("drink name is required: %w", common.ErrValidation)
	}
	if stock.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %w", common.ErrValidation)
	}
	if stock.ID == uuid.Nil {
		stock.ID = uuid.New()
	}
	if err := s.stockRepo.Create(ctx, stock); err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

func (s *stockService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Stock, error) {
	stock, err := s.stockRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	if stock == nil {
		return nil, fmt.Errorf("stock %s: %w", id, common.ErrNotFound)
	}
	return stock, nil
}

func (s *stockService) List(ctx context.Context, restaurantID uuid.UUID, pageNumber, pageSize int) (*models.StockPage, error) {
	pageNumber, pageSize = common.ValidatePaginationParams(pageNumber, pageSize)

	totalCount, err := s.stockRepo.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.stockRepo.List(ctx, restaurantID, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	return &models.StockPage{
		Items:       stocks,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
	}, nil
}

// Adjust applies a manual signed correction to quantity on hand. Negative
// changes are floor-checked the same way order debits are.
func (s *stockService) Adjust(ctx context.Context, restaurantID, id uuid.UUID, change int) (*models.Stock, error) {
	if change == 0 {
		return nil, fmt.Errorf("change cannot be zero: %w", common.ErrValidation)
	}

	var err error
	if change > 0 {
		err = s.stockRepo.Increment(ctx, id, change)
	} else {
		err = s.stockRepo.Decrement(ctx, id, -change)
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, restaurantID, id)
}
