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

// OrderLine is one requested line item of an order intent.
type OrderLine struct {
	MenuItemID          uuid.UUID
	Quantity            int
	SpecialInstructions string
}

// OrderServiceInterface defines the order aggregate's operations.
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, restaurantID, tableID uuid.UUID, lines []OrderLine) (*models.Order, error)
	AddOrderItem(ctx context.Context, restaurantID, orderID, menuItemID uuid.UUID, quantity int, instructions string) (*models.Order, error)
	UpdateOrderItem(ctx context.Context, restaurantID, itemID uuid.UUID, quantity int, instructions string) (*models.Order, error)
	RemoveOrderItem(ctx context.Context, restaurantID, itemID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, principal *models.Principal, orderID uuid.UUID, newStatus models.Status, station *models.Destination) (*models.Order, error)
	GetOrder(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error)
	ActiveOrdersByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*models.Order, error)
	ActiveOrders(ctx context.Context, principal *models.Principal) ([]*models.Order, error)
	OrderHistory(ctx context.Context, principal *models.Principal, pageNumber, pageSize int) (*models.OrderPage, error)
}

type orderService struct {
	store    *repositories.Store
	tx       repositories.TxManager
	notifier Notifier
}

// NewOrderService creates the order service. The store is pool-bound and
// serves reads; every mutation runs through the transaction manager.
func NewOrderService(store *repositories.Store, tx repositories.TxManager, notifier Notifier) OrderServiceInterface {
	return &orderService{store: store, tx: tx, notifier: notifier}
}

// pendingNotice is a fan-out captured during a transaction and delivered
// only after commit. Realtime delivery is non-authoritative, so it stays
// outside the strict transaction boundary.
type pendingNotice struct {
	role    models.Role
	message string
	kind    string
}

func (s *orderService) deliver(ctx context.Context, restaurantID uuid.UUID, notices []pendingNotice) {
	for _, n := range notices {
		if err := s.notifier.NotifyRole(ctx, restaurantID, n.role, n.message, n.kind); err != nil {
			log.Printf("order service: notify %s: %v", n.role, err)
		}
	}
}

// CreateOrder places a new order for a table as one atomic unit: the table
// is occupied, the order and its items are created, a station ticket is
// opened per destination present, and bar items with linked stock debit the
// ledger. Insufficient stock aborts the whole operation.
func (s *orderService) CreateOrder(ctx context.Context, restaurantID, tableID uuid.UUID, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order requires at least one item: %w", common.ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive: %w", common.ErrValidation)
		}
	}

	var (
		order   *models.Order
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
		if err := store.Tables.UpdateStatus(ctx, table.ID, models.TableOccupied); err != nil {
			return fmt.Errorf("occupy table: %w", err)
		}

		order = &models.Order{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			TableID:      tableID,
			Status:       models.StatusPending,
		}
		if err := store.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		tickets := map[models.Destination]bool{}
		for _, line := range lines {
			menuItem, err := store.MenuItems.GetByID(ctx, restaurantID, line.MenuItemID)
			if err != nil {
				return fmt.Errorf("load menu item: %w", err)
			}
			if menuItem == nil {
				return fmt.Errorf("menu item %s: %w", line.MenuItemID, common.ErrNotFound)
			}

			item := &models.OrderItem{
				ID:                  uuid.New(),
				OrderID:             order.ID,
				MenuItemID:          menuItem.ID,
				Quantity:            line.Quantity,
				SpecialInstructions: line.SpecialInstructions,
			}
			if err := store.OrderItems.Create(ctx, item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			if menuItem.Destination == models.DestinationBar && menuItem.StockID != nil {
				if err := store.Stocks.Decrement(ctx, *menuItem.StockID, line.Quantity); err != nil {
					return fmt.Errorf("debit stock for %s: %w", menuItem.Name, err)
				}
			}

			if !tickets[menuItem.Destination] {
				ticket := &models.StationOrder{
					ID:      uuid.New(),
					OrderID: order.ID,
					Station: menuItem.Destination,
					StockID: menuItem.StockID,
					Status:  models.StatusPending,
				}
				if err := store.Stations.Create(ctx, ticket); err != nil {
					return fmt.Errorf("create %s ticket: %w", menuItem.Destination, err)
				}
				tickets[menuItem.Destination] = true
			}

			switch menuItem.Destination {
			case models.DestinationKitchen:
				notices = append(notices, pendingNotice{
					role:    models.RoleKitchenStaff,
					message: fmt.Sprintf("New order received for %s.", menuItem.Name),
					kind:    models.NotificationTypeOrder,
				})
			case models.DestinationBar:
				notices = append(notices, pendingNotice{
					role:    models.RoleBartender,
					message: fmt.Sprintf("New drink order for %s.", menuItem.Name),
					kind:    models.NotificationTypeOrder,
				})
			}
		}

		notices = append(notices, pendingNotice{
			role:    models.RoleWaiter,
			message: fmt.Sprintf("New order placed at Table %s.", table.Number),
			kind:    models.NotificationTypeOrder,
		})

		order.Items, err = store.OrderItems.ListByOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return order, nil
}

// AddOrderItem appends a line item to an existing order, debiting linked
// stock and opening the destination's ticket if it is the first item routed
// there.
func (s *orderService) AddOrderItem(ctx context.Context, restaurantID, orderID, menuItemID uuid.UUID, quantity int, instructions string) (*models.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("item quantity must be positive: %w", common.ErrValidation)
	}

	var (
		order   *models.Order
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		var err error
		order, err = store.Orders.GetByID(ctx, restaurantID, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, common.ErrNotFound)
		}
		if order.Status.IsTerminal() {
			return fmt.Errorf("order is %s: %w", order.Status, common.ErrConflict)
		}

		menuItem, err := store.MenuItems.GetByID(ctx, restaurantID, menuItemID)
		if err != nil {
			return fmt.Errorf("load menu item: %w", err)
		}
		if menuItem == nil {
			return fmt.Errorf("menu item %s: %w", menuItemID, common.ErrNotFound)
		}

		if menuItem.Destination == models.DestinationBar && menuItem.StockID != nil {
			if err := store.Stocks.Decrement(ctx, *menuItem.StockID, quantity); err != nil {
				return fmt.Errorf("debit stock for %s: %w", menuItem.Name, err)
			}
		}

		item := &models.OrderItem{
			ID:                  uuid.New(),
			OrderID:             order.ID,
			MenuItemID:          menuItem.ID,
			Quantity:            quantity,
			SpecialInstructions: instructions,
		}
		if err := store.OrderItems.Create(ctx, item); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}

		ticket, err := store.Stations.GetByOrderAndStation(ctx, order.ID, menuItem.Destination)
		if err != nil {
			return fmt.Errorf("load %s ticket: %w", menuItem.Destination, err)
		}
		if ticket == nil {
			ticket = &models.StationOrder{
				ID:      uuid.New(),
				OrderID: order.ID,
				Station: menuItem.Destination,
				StockID: menuItem.StockID,
				Status:  models.StatusPending,
			}
			if err := store.Stations.Create(ctx, ticket); err != nil {
				return fmt.Errorf("create %s ticket: %w", menuItem.Destination, err)
			}
		}

		notices = append(notices, stationNotice(menuItem, fmt.Sprintf("New order received for %s.", menuItem.Name), fmt.Sprintf("New drink order for %s.", menuItem.Name)))

		order.Items, err = store.OrderItems.ListByOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return order, nil
}

// UpdateOrderItem changes a line item's quantity and instructions,
// reconciling any linked stock debit by the quantity delta.
func (s *orderService) UpdateOrderItem(ctx context.Context, restaurantID, itemID uuid.UUID, quantity int, instructions string) (*models.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("item quantity must be positive: %w", common.ErrValidation)
	}

	var (
		order   *models.Order
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		item, err := store.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load order item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("order item %s: %w", itemID, common.ErrNotFound)
		}
		order, err = store.Orders.GetByID(ctx, restaurantID, item.OrderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", item.OrderID, common.ErrNotFound)
		}
		if order.Status.IsTerminal() {
			return fmt.Errorf("order is %s: %w", order.Status, common.ErrConflict)
		}

		menuItem := item.MenuItem
		if menuItem.Destination == models.DestinationBar && menuItem.StockID != nil {
			delta := quantity - item.Quantity
			if delta > 0 {
				if err := store.Stocks.Decrement(ctx, *menuItem.StockID, delta); err != nil {
					return fmt.Errorf("debit stock for %s: %w", menuItem.Name, err)
				}
			} else if delta < 0 {
				if err := store.Stocks.Increment(ctx, *menuItem.StockID, -delta); err != nil {
					return fmt.Errorf("credit stock for %s: %w", menuItem.Name, err)
				}
			}
		}

		if err := store.OrderItems.Update(ctx, item.ID, quantity, instructions); err != nil {
			return fmt.Errorf("update order item: %w", err)
		}

		notices = append(notices, stationNotice(menuItem, fmt.Sprintf("Order updated for %s.", menuItem.Name), fmt.Sprintf("Drink order updated for %s.", menuItem.Name)))

		order.Items, err = store.OrderItems.ListByOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return order, nil
}

// RemoveOrderItem deletes a line item and reverses any stock debit it
// caused.
func (s *orderService) RemoveOrderItem(ctx context.Context, restaurantID, itemID uuid.UUID) (*models.Order, error) {
	var (
		order   *models.Order
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		item, err := store.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load order item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("order item %s: %w", itemID, common.ErrNotFound)
		}
		order, err = store.Orders.GetByID(ctx, restaurantID, item.OrderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", item.OrderID, common.ErrNotFound)
		}
		// A cancelled order already credited its debits back; a second
		// credit here would inflate the ledger.
		if order.Status.IsTerminal() {
			return fmt.Errorf("order is %s: %w", order.Status, common.ErrConflict)
		}

		menuItem := item.MenuItem
		if menuItem.Destination == models.DestinationBar && menuItem.StockID != nil {
			if err := store.Stocks.Increment(ctx, *menuItem.StockID, item.Quantity); err != nil {
				return fmt.Errorf("credit stock for %s: %w", menuItem.Name, err)
			}
		}

		if err := store.OrderItems.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete order item: %w", err)
		}

		notices = append(notices, stationNotice(menuItem, fmt.Sprintf("Order item %s removed.", menuItem.Name), fmt.Sprintf("Drink order for %s removed.", menuItem.Name)))

		order.Items, err = store.OrderItems.ListByOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, restaurantID, notices)
	return order, nil
}

// UpdateOrderStatus applies a role-scoped status transition. Kitchen staff
// and bartenders transition their own station's ticket; waiters and
// managers may target a station explicitly or transition the parent order,
// cascading to both ticket sets. After every ticket mutation the composite
// status is recomputed from a current read of the ticket sets. Cancelling a
// parent order credits back every stock debit of its items.
func (s *orderService) UpdateOrderStatus(ctx context.Context, principal *models.Principal, orderID uuid.UUID, newStatus models.Status, station *models.Destination) (*models.Order, error) {
	var (
		order   *models.Order
		notices []pendingNotice
	)
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		var err error
		order, err = store.Orders.GetByID(ctx, principal.RestaurantID, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, common.ErrNotFound)
		}

		table, err := store.Tables.GetByID(ctx, principal.RestaurantID, order.TableID)
		if err != nil {
			return fmt.Errorf("load table: %w", err)
		}
		tableNumber := ""
		if table != nil {
			tableNumber = table.Number
		}

		switch {
		case principal.Role == models.RoleKitchenStaff || principal.Role == models.RoleBartender:
			ownStation, _ := principal.Role.Station()
			if station != nil && *station != ownStation {
				return fmt.Errorf("%s may not transition %s tickets: %w", principal.Role.DisplayName(), *station, common.ErrForbidden)
			}
			if err := s.transitionTicket(ctx, store, order, ownStation, newStatus); err != nil {
				return err
			}
		case principal.Role.CanManageOrders():
			if station != nil {
				if err := s.transitionTicket(ctx, store, order, *station, newStatus); err != nil {
					return err
				}
			} else {
				if err := s.transitionParent(ctx, store, order, newStatus); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("role %s may not transition orders: %w", principal.Role.DisplayName(), common.ErrForbidden)
		}

		switch order.Status {
		case models.StatusCancelled:
			message := fmt.Sprintf("Order at Table %s was cancelled.", tableNumber)
			notices = append(notices,
				pendingNotice{role: models.RoleKitchenStaff, message: message, kind: models.NotificationTypeOrder},
				pendingNotice{role: models.RoleBartender, message: message, kind: models.NotificationTypeOrder},
			)
		case models.StatusReady:
			notices = append(notices, pendingNotice{
				role:    models.RoleWaiter,
				message: fmt.Sprintf("Order for Table %s is ready.", tableNumber),
				kind:    models.NotificationTypeOrder,
			})
		default:
			notices = append(notices, pendingNotice{
				role:    models.RoleWaiter,
				message: fmt.Sprintf("Order at Table %s is now %s.", tableNumber, order.Status),
				kind:    models.NotificationTypeOrder,
			})
		}

		order.Items, err = store.OrderItems.ListByOrder(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, principal.RestaurantID, notices)
	return order, nil
}

// transitionTicket moves one station ticket forward and reconciles the
// parent's composite status from a fresh read of both ticket sets.
func (s *orderService) transitionTicket(ctx context.Context, store *repositories.Store, order *models.Order, station models.Destination, newStatus models.Status) error {
	if newStatus != models.StatusInProgress && newStatus != models.StatusReady && newStatus != models.StatusServed {
		return fmt.Errorf("station tickets may only move to IN_PROGRESS, READY or SERVED: %w", common.ErrConflict)
	}

	ticket, err := store.Stations.GetByOrderAndStation(ctx, order.ID, station)
	if err != nil {
		return fmt.Errorf("load %s ticket: %w", station, err)
	}
	if ticket == nil {
		return fmt.Errorf("%s ticket for order %s: %w", station, order.ID, common.ErrNotFound)
	}
	if !ticket.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("ticket cannot move from %s to %s: %w", ticket.Status, newStatus, common.ErrConflict)
	}
	if err := store.Stations.UpdateStatus(ctx, ticket.ID, newStatus); err != nil {
		return fmt.Errorf("update %s ticket: %w", station, err)
	}

	// Reconcile from the current ticket sets, not a cached snapshot, so a
	// concurrent station update committed meanwhile is not clobbered.
	tickets, err := store.Stations.ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("load tickets: %w", err)
	}
	var kitchen, bar []models.Status
	for _, t := range tickets {
		if t.Station == models.DestinationKitchen {
			kitchen = append(kitchen, t.Status)
		} else {
			bar = append(bar, t.Status)
		}
	}
	composite := ReconcileStatus(kitchen, bar)
	if err := store.Orders.UpdateStatus(ctx, order.ID, composite); err != nil {
		return fmt.Errorf("update composite status: %w", err)
	}
	order.Status = composite
	return nil
}

// transitionParent moves the order itself and cascades to both ticket sets.
// Cancellation credits back every stock debit of the order's items.
func (s *orderService) transitionParent(ctx context.Context, store *repositories.Store, order *models.Order, newStatus models.Status) error {
	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("order cannot move from %s to %s: %w", order.Status, newStatus, common.ErrConflict)
	}

	if newStatus == models.StatusCancelled {
		items, err := store.OrderItems.ListByOrder(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("load items for cancellation: %w", err)
		}
		for _, item := range items {
			if item.MenuItem.Destination == models.DestinationBar && item.MenuItem.StockID != nil {
				if err := store.Stocks.Increment(ctx, *item.MenuItem.StockID, item.Quantity); err != nil {
					return fmt.Errorf("credit stock for %s: %w", item.MenuItem.Name, err)
				}
			}
		}
	}

	if err := store.Orders.UpdateStatus(ctx, order.ID, newStatus); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if err := store.Stations.UpdateStatusByOrder(ctx, order.ID, newStatus); err != nil {
		return fmt.Errorf("cascade ticket statuses: %w", err)
	}
	order.Status = newStatus
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders.GetByID(ctx, restaurantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, common.ErrNotFound)
	}
	order.Items, err = s.store.OrderItems.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return order, nil
}

func (s *orderService) ActiveOrdersByTable(ctx context.Context, restaurantID, tableID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.store.Orders.ListByTableAndStatuses(ctx, restaurantID, tableID, models.ActiveStatuses())
	if err != nil {
		return nil, fmt.Errorf("load active orders: %w", err)
	}
	return s.attachItems(ctx, orders)
}

// ActiveOrders returns the role-scoped active set: waiters and managers see
// every active order; station staff see only orders whose own ticket still
// needs work.
func (s *orderService) ActiveOrders(ctx context.Context, principal *models.Principal) ([]*models.Order, error) {
	var (
		orders []*models.Order
		err    error
	)
	if station, ok := principal.Role.Station(); ok {
		orders, err = s.store.Orders.ListByStationAndStatuses(ctx, principal.RestaurantID, station,
			[]models.Status{models.StatusPending, models.StatusInProgress})
	} else if principal.Role.CanManageOrders() {
		orders, err = s.store.Orders.ListByStatuses(ctx, principal.RestaurantID, models.ActiveStatuses())
	} else {
		return nil, fmt.Errorf("role %s may not list orders: %w", principal.Role.DisplayName(), common.ErrForbidden)
	}
	if err != nil {
		return nil, fmt.Errorf("load active orders: %w", err)
	}
	return s.attachItems(ctx, orders)
}

func (s *orderService) OrderHistory(ctx context.Context, principal *models.Principal, pageNumber, pageSize int) (*models.OrderPage, error) {
	if !principal.Role.CanManageOrders() {
		if _, ok := principal.Role.Station(); !ok {
			return nil, fmt.Errorf("role %s may not list order history: %w", principal.Role.DisplayName(), common.ErrForbidden)
		}
	}
	pageNumber, pageSize = common.ValidatePaginationParams(pageNumber, pageSize)

	totalCount, err := s.store.Orders.CountByRestaurant(ctx, principal.RestaurantID)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders.ListHistory(ctx, principal.RestaurantID, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	orders, err = s.attachItems(ctx, orders)
	if err != nil {
		return nil, err
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	return &models.OrderPage{
		Items:       orders,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
	}, nil
}

func (s *orderService) attachItems(ctx context.Context, orders []*models.Order) ([]*models.Order, error) {
	for _, order := range orders {
		items, err := s.store.OrderItems.ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("load order items: %w", err)
		}
		order.Items = items
	}
	return orders, nil
}

func stationNotice(menuItem *models.MenuItem, kitchenMsg, barMsg string) pendingNotice {
	if menuItem.Destination == models.DestinationKitchen {
		return pendingNotice{role: models.RoleKitchenStaff, message: kitchenMsg, kind: models.NotificationTypeOrder}
	}
	return pendingNotice{role: models.RoleBartender, message: barMsg, kind: models.NotificationTypeOrder}
}
