package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/services"
)

// OrderHandlers handles HTTP requests for the order lifecycle
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := common.GetPrincipalFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		TableID string `json:"table_id"`
		Items   []struct {
			MenuItemID          string `json:"menu_item_id"`
			Quantity            int    `json:"quantity"`
			SpecialInstructions string `json:"special_instructions"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tableID, err := common.ValidateUUID(req.TableID, "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if len(req.Items) == 0 {
		return common.SendValidationError(c, "items", "At least one item is required")
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := common.ValidateUUID(item.MenuItemID, "menu_item_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		if err := common.ValidatePositiveInteger(item.Quantity, "quantity", 100); err != nil {
			return common.SendValidationError(c, "quantity", err.Error())
		}
		lines = append(lines, services.OrderLine{
			MenuItemID:          menuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	order, err := h.orderService.CreateOrder(ctx, principal.RestaurantID, tableID, lines)
	if err != nil {
		return common.SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrder(ctx, restaurantID, orderID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetActiveOrders handles GET /orders/active. The result is scoped to the
// caller's role: station staff see only their own station's queue.
func (h *OrderHandlers) GetActiveOrders(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := common.GetPrincipalFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orders, err := h.orderService.ActiveOrders(ctx, principal)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// GetActiveOrdersByTable handles GET /tables/:id/orders
func (h *OrderHandlers) GetActiveOrdersByTable(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	tableID, err := common.ValidateUUID(c.Param("id"), "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	orders, err := h.orderService.ActiveOrdersByTable(ctx, restaurantID, tableID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// GetOrderHistory handles GET /orders/history
func (h *OrderHandlers) GetOrderHistory(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := common.GetPrincipalFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	pageNumber := 1
	pageSize := 10
	if p := c.QueryParam("pageNumber"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			pageNumber = n
		}
	}
	if p := c.QueryParam("pageSize"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			pageSize = n
		}
	}

	page, err := h.orderService.OrderHistory(ctx, principal, pageNumber, pageSize)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateOrderStatus handles PATCH /orders/:id/status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	principal, ok := common.GetPrincipalFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status  string  `json:"status"`
		Station *string `json:"station"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	newStatus, ok := models.ParseStatus(req.Status)
	if !ok {
		return common.SendValidationError(c, "status", "Unknown status")
	}

	var station *models.Destination
	if req.Station != nil && *req.Station != "" {
		dest, ok := models.ParseDestination(*req.Station)
		if !ok {
			return common.SendValidationError(c, "station", "Unknown station")
		}
		station = &dest
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, principal, orderID, newStatus, station)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// AddOrderItem handles POST /orders/:id/items
func (h *OrderHandlers) AddOrderItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		MenuItemID          string `json:"menu_item_id"`
		Quantity            int    `json:"quantity"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	menuItemID, err := common.ValidateUUID(req.MenuItemID, "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 100); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}

	order, err := h.orderService.AddOrderItem(ctx, restaurantID, orderID, menuItemID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order item added successfully",
		"order":   order,
	})
}

// UpdateOrderItem handles PATCH /orders/items/:itemId
func (h *OrderHandlers) UpdateOrderItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	itemID, err := common.ValidateUUID(c.Param("itemId"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Quantity            int    `json:"quantity"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 100); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}

	order, err := h.orderService.UpdateOrderItem(ctx, restaurantID, itemID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order item updated successfully",
		"order":   order,
	})
}

// RemoveOrderItem handles DELETE /orders/items/:itemId
func (h *OrderHandlers) RemoveOrderItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	itemID, err := common.ValidateUUID(c.Param("itemId"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.RemoveOrderItem(ctx, restaurantID, itemID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order item removed successfully",
		"order":   order,
	})
}
