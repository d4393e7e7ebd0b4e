package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// BillingServiceInterface closes out orders: payment requests per table and
// bill generation over a set of orders.
type BillingServiceInterface interface {
	RequestPaymentByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*models.Order, error)
	GenerateBill(ctx context.Context, restaurantID uuid.UUID, orderIDs []uuid.UUID, breakdown *models.BillBreakdown) (*models.Bill, error)
}

type billingService struct {
	store    *repositories.Store
	tx       repositories.TxManager
	notifier Notifier
}

func NewBillingService(store *repositories.Store, tx repositories.TxManager, notifier Notifier) BillingServiceInterface {
	return &billingService{store: store, tx: tx, notifier: notifier}
}

// RequestPaymentByTable moves every non-terminal order of the table, with
// its tickets, to PAYMENT_REQUESTED and notifies waiters.
func (s *billingService) RequestPaymentByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*models.Order, error) {
	var (
		orders  []*models.Order
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		table, err := store.Tables.GetByID(ctx, restaurantID, tableID)
		if err != nil {
			return fmt.Errorf("load table: %w", err)
		}
		if table == nil {
			return fmt.Errorf("table %s: %w", tableID, common.ErrNotFound)
		}

		orders, err = store.Orders.ListByTableAndStatuses(ctx, restaurantID, tableID, models.ActiveStatuses())
		if err != nil {
			return fmt.Errorf("load active orders: %w", err)
		}
		if len(orders) == 0 {
			return fmt.Errorf("no active orders for table %s: %w", table.Number, common.ErrNotFound)
		}

		for _, order := range orders {
			if err := store.Orders.UpdateStatus(ctx, order.ID, models.StatusPaymentRequested); err != nil {
				return fmt.Errorf("update order status: %w", err)
			}
			if err := store.Stations.UpdateStatusByOrder(ctx, order.ID, models.StatusPaymentRequested); err != nil {
				return fmt.Errorf("cascade ticket statuses: %w", err)
			}
			order.Status = models.StatusPaymentRequested
		}

		notices = append(notices, pendingNotice{
			role:    models.RoleWaiter,
			message: fmt.Sprintf("Payment requested at Table %s.", table.Number),
			kind:    models.NotificationTypeBilling,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return orders, nil
}

// GenerateBill sums quantity x price across the items of the given orders,
// moves the orders and their tickets to PAID, releases the table, and
// persists one bill referencing the order set. Unknown identifiers are
// skipped, as are orders already in a terminal state; if none resolve the
// operation fails with not found, and if none remain billable it fails
// with a conflict.
func (s *billingService) GenerateBill(ctx context.Context, restaurantID uuid.UUID, orderIDs []uuid.UUID, breakdown *models.BillBreakdown) (*models.Bill, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("at least one order is required: %w", common.ErrValidation)
	}

	var (
		bill    *models.Bill
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		orders, err := store.Orders.ListByIDs(ctx, restaurantID, orderIDs)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		if len(orders) == 0 {
			return fmt.Errorf("orders: %w", common.ErrNotFound)
		}

		total := 0.0
		settled := make([]uuid.UUID, 0, len(orders))
		tables := map[uuid.UUID]bool{}
		for _, order := range orders {
			// CANCELLED and already-PAID orders never reach a bill.
			if !order.Status.CanTransitionTo(models.StatusPaid) {
				continue
			}

			items, err := store.OrderItems.ListByOrder(ctx, order.ID)
			if err != nil {
				return fmt.Errorf("load order items: %w", err)
			}
			for _, item := range items {
				total += float64(item.Quantity) * item.MenuItem.Price
			}

			if err := store.Orders.UpdateStatus(ctx, order.ID, models.StatusPaid); err != nil {
				return fmt.Errorf("update order status: %w", err)
			}
			if err := store.Stations.UpdateStatusByOrder(ctx, order.ID, models.StatusPaid); err != nil {
				return fmt.Errorf("cascade ticket statuses: %w", err)
			}
			settled = append(settled, order.ID)
			tables[order.TableID] = true
		}
		if len(settled) == 0 {
			return fmt.Errorf("no billable orders: %w", common.ErrConflict)
		}

		for tableID := range tables {
			if err := store.Tables.UpdateStatus(ctx, tableID, models.TableAvailable); err != nil {
				return fmt.Errorf("release table: %w", err)
			}
		}

		bill = &models.Bill{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Total:        total,
			OrderIDs:     settled,
		}
		if breakdown != nil {
			bill.Tax = breakdown.Tax
			bill.Tip = breakdown.Tip
			bill.Discount = breakdown.Discount
			bill.CardLast4 = breakdown.CardLast4
		}
		if err := store.Bills.Create(ctx, bill); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}

		notices = append(notices, pendingNotice{
			role:    models.RoleWaiter,
			message: fmt.Sprintf("Bill of %.2f settled for %d order(s).", total, len(settled)),
			kind:    models.NotificationTypeBilling,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return bill, nil
}

func (s *billingService) deliver(ctx context.Context, restaurantID uuid.UUID, notices []pendingNotice) {
	// Fan-out is best-effort once the transaction has committed.
	for _, n := range notices {
		if err := s.notifier.NotifyRole(ctx, restaurantID, n.role, n.message, n.kind); err != nil {
			log.Printf("billing service: notify %s: %v", n.role, err)
		}
	}
}
