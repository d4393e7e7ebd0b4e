package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tablemate/internal/models"
	"tablemate/internal/repositories"
	"tablemate/internal/services"
)

// StockAlertService sweeps the inventory ledger for entries at or below a
// threshold and notifies each restaurant's managers.
type StockAlertService struct {
	stockRepo      repositories.StockRepository
	restaurantRepo repositories.RestaurantRepository
	notifier       services.Notifier
	threshold      int
}

type StockAlert struct {
	RestaurantID uuid.UUID
	StockID      uuid.UUID
	DrinkName    string
	Quantity     int
	Threshold    int
}

func NewStockAlertService(stockRepo repositories.StockRepository, restaurantRepo repositories.RestaurantRepository, notifier services.Notifier, threshold int) *StockAlertService {
	if threshold <= 0 {
		threshold = 10
	}
	return &StockAlertService{
		stockRepo:      stockRepo,
		restaurantRepo: restaurantRepo,
		notifier:       notifier,
		threshold:      threshold,
	}
}

// CheckLowStock returns the low entries for one restaurant.
func (s *StockAlertService) CheckLowStock(ctx context.Context, restaurantID uuid.UUID) ([]StockAlert, error) {
	stocks, err := s.stockRepo.ListBelowThreshold(ctx, restaurantID, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	alerts := make([]StockAlert, 0, len(stocks))
	for _, stock := range stocks {
		alerts = append(alerts, StockAlert{
			RestaurantID: restaurantID,
			StockID:      stock.ID,
			DrinkName:    stock.DrinkName,
			Quantity:     stock.Quantity,
			Threshold:    s.threshold,
		})
	}
	return alerts, nil
}

// Sweep checks every restaurant and notifies its managers about the low
// entries found.
func (s *StockAlertService) Sweep(ctx context.Context) error {
	restaurants, err := s.restaurantRepo.List(ctx, 1000, 0)
	if err != nil {
		return fmt.Errorf("list restaurants: %w", err)
	}

	for _, restaurant := range restaurants {
		alerts, err := s.CheckLowStock(ctx, restaurant.ID)
		if err != nil {
			log.Printf("stock alerts: restaurant %s: %v", restaurant.ID, err)
			continue
		}
		for _, alert := range alerts {
			message := fmt.Sprintf("Low stock: %s has %d unit(s) left.", alert.DrinkName, alert.Quantity)
			if err := s.notifier.NotifyRole(ctx, restaurant.ID, models.RoleManager, message, models.NotificationTypeStock); err != nil {
				log.Printf("stock alerts: notify managers of %s: %v", restaurant.ID, err)
			}
		}
		if len(alerts) > 0 {
			log.Printf("stock alerts: restaurant %s has %d low stock entries", restaurant.ID, len(alerts))
		}
	}
	return nil
}
