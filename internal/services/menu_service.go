package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tablemate/internal/caching"
	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// MenuService manages the orderable catalogue the order core reads
// destination, price and stock linkage from.
type MenuService interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type menuService struct {
	menuRepo     repositories.MenuItemRepository
	stockRepo    repositories.StockRepository
	cacheService caching.CacheService
}

func NewMenuService(menuRepo repositories.MenuItemRepository, stockRepo repositories.StockRepository, cacheService caching.CacheService) MenuService {
	return &menuService{
		menuRepo:     menuRepo,
		stockRepo:    stockRepo,
		cacheService: cacheService,
	}
}

func (s *menuService) Create(ctx context.Context, item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required: %w", common.ErrValidation)
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item price must be positive: %w", common.ErrValidation)
	}
	if _, ok := models.ParseDestination(string(item.Destination)); !ok {
		return fmt.Errorf("unknown destination %q: %w", item.Destination, common.ErrValidation)
	}
	if item.StockID != nil {
		stock, err := s.stockRepo.GetByID(ctx, item.RestaurantID, *item.StockID)
		if err != nil {
			return fmt.Errorf("load linked stock: %w", err)
		}
		if stock == nil {
			return fmt.Errorf("stock %s: %w", *item.StockID, common.ErrNotFound)
		}
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	s.invalidate(ctx, item.RestaurantID)
	return nil
}

func (s *menuService) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, fmt.Errorf("load menu item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("menu item %s: %w", id, common.ErrNotFound)
	}
	return item, nil
}

func (s *menuService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	if items, ok, err := s.cacheService.GetMenuItems(ctx, restaurantID); err == nil && ok {
		return items, nil
	}

	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	if err := s.cacheService.SetMenuItems(ctx, restaurantID, items, caching.MenuItemsTTL); err != nil {
		log.Printf("menu service: cache menu items: %v", err)
	}
	return items, nil
}

func (s *menuService) Update(ctx context.Context, item *models.MenuItem) error {
	existing, err := s.menuRepo.GetByID(ctx, item.RestaurantID, item.ID)
	if err != nil {
		return fmt.Errorf("load menu item: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("menu item %s: %w", item.ID, common.ErrNotFound)
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	s.invalidate(ctx, item.RestaurantID)
	return nil
}

func (s *menuService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	existing, err := s.menuRepo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return fmt.Errorf("load menu item: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("menu item %s: %w", id, common.ErrNotFound)
	}
	if err := s.menuRepo.Delete(ctx, restaurantID, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	s.invalidate(ctx, restaurantID)
	return nil
}

func (s *menuService) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if err := s.cacheService.DeleteMenuItems(ctx, restaurantID); err != nil {
		log.Printf("menu service: invalidate menu cache: %v", err)
	}
}
