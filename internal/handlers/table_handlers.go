package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/services"
)

// TableHandlers handles HTTP requests for seating tables
type TableHandlers struct {
	tableService services.TableService
}

func NewTableHandlers(tableService services.TableService) *TableHandlers {
	return &TableHandlers{
		tableService: tableService,
	}
}

// CreateTable handles POST /tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Number string `json:"number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	table, err := h.tableService.Create(ctx, restaurantID, req.Number)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Table created successfully",
		"table":   table,
	})
}

// ListTables handles GET /tables
func (h *TableHandlers) ListTables(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tables, err := h.tableService.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tables": tables,
	})
}

// GetTable handles GET /tables/:id
func (h *TableHandlers) GetTable(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	table, err := h.tableService.GetByID(ctx, restaurantID, id)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

// UpdateTable handles PUT /tables/:id
func (h *TableHandlers) UpdateTable(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Number string `json:"number"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	table, err := h.tableService.UpdateNumber(ctx, restaurantID, id, req.Number)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Table updated successfully",
		"table":   table,
	})
}

// DeleteTable handles DELETE /tables/:id
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.tableService.Delete(ctx, restaurantID, id); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Table deleted successfully",
	})
}
