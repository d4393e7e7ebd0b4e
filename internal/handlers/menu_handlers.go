package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/services"
)

// MenuHandlers handles HTTP requests for the menu catalogue
type MenuHandlers struct {
	menuService  services.MenuService
	mediaService services.MediaService
}

func NewMenuHandlers(menuService services.MenuService, mediaService services.MediaService) *MenuHandlers {
	return &MenuHandlers{
		menuService:  menuService,
		mediaService: mediaService,
	}
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Destination string  `json:"destination"`
	StockID     *string `json:"stock_id"`
	Ingredients string  `json:"ingredients"`
	Image       *string `json:"image"`
}

func (h *MenuHandlers) bindMenuItem(c echo.Context, restaurantID uuid.UUID) (*models.MenuItem, error) {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.SendClientError(c, "Invalid request format")
	}

	destination, ok := models.ParseDestination(req.Destination)
	if !ok {
		return nil, common.SendValidationError(c, "destination", "Destination must be KITCHEN or BAR")
	}

	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        req.Price,
		Destination:  destination,
		Ingredients:  req.Ingredients,
		Image:        req.Image,
	}
	if req.StockID != nil && *req.StockID != "" {
		stockID, err := common.ValidateUUID(*req.StockID, "stock_id")
		if err != nil {
			return nil, common.SendClientError(c, err.Error())
		}
		item.StockID = &stockID
	}
	return item, nil
}

// CreateMenuItem handles POST /menu
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	item, err := h.bindMenuItem(c, restaurantID)
	if err != nil {
		return err
	}
	if err := h.menuService.Create(ctx, item); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Menu item created successfully",
		"menu_item": item,
	})
}

// ListMenuItems handles GET /menu
func (h *MenuHandlers) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	items, err := h.menuService.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"menu_items": items,
	})
}

// GetMenuItem handles GET /menu/:id
func (h *MenuHandlers) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.menuService.GetByID(ctx, restaurantID, id)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateMenuItem handles PUT /menu/:id
func (h *MenuHandlers) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.bindMenuItem(c, restaurantID)
	if err != nil {
		return err
	}
	item.ID = id
	if err := h.menuService.Update(ctx, item); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Menu item updated successfully",
		"menu_item": item,
	})
}

// UploadMenuItemImage handles POST /menu/:id/image (multipart form upload)
func (h *MenuHandlers) UploadMenuItemImage(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.menuService.GetByID(ctx, restaurantID, id)
	if err != nil {
		return common.SendServiceError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "Image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	objectName, err := h.mediaService.UploadMenuItemImage(ctx, restaurantID, id, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return common.SendServerError(c, "Failed to store image: "+err.Error())
	}

	item.Image = &objectName
	if err := h.menuService.Update(ctx, item); err != nil {
		return common.SendServiceError(c, err)
	}

	url, err := h.mediaService.PresignedURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate image URL: "+err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image uploaded successfully",
		"object":  objectName,
		"url":     url,
	})
}

// DeleteMenuItem handles DELETE /menu/:id
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.menuService.Delete(ctx, restaurantID, id); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Menu item deleted successfully",
	})
}
