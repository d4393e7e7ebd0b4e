package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/services"
)

// StockHandlers handles HTTP requests for the inventory ledger
type StockHandlers struct {
	stockService services.StockService
	mediaService services.MediaService
}

func NewStockHandlers(stockService services.StockService, mediaService services.MediaService) *StockHandlers {
	return &StockHandlers{
		stockService: stockService,
		mediaService: mediaService,
	}
}

// CreateStock handles POST /stocks
func (h *StockHandlers) CreateStock(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		DrinkName string  `json:"drink_name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	stock := &models.Stock{
		RestaurantID: restaurantID,
		DrinkName:    req.DrinkName,
		Price:        req.Price,
		Quantity:     req.Quantity,
	}
	if err := h.stockService.Create(ctx, stock); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Stock created successfully",
		"stock":   stock,
	})
}

// ListStocks handles GET /stocks
func (h *StockHandlers) ListStocks(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
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

	page, err := h.stockService.List(ctx, restaurantID, pageNumber, pageSize)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetStock handles GET /stocks/:id
func (h *StockHandlers) GetStock(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "stock_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	stock, err := h.stockService.GetByID(ctx, restaurantID, id)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// AdjustStock handles POST /stocks/:id/adjust. Negative changes are
// floor-checked against the current quantity.
func (h *StockHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "stock_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Change int `json:"change"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Change == 0 {
		return common.SendValidationError(c, "change", "Change must be non-zero")
	}

	stock, err := h.stockService.Adjust(ctx, restaurantID, id, req.Change)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Stock adjusted successfully",
		"stock":   stock,
	})
}

// UploadStockImage handles POST /stocks/:id/image (multipart form upload)
func (h *StockHandlers) UploadStockImage(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "stock_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	// The stock must exist before an image is attached.
	if _, err := h.stockService.GetByID(ctx, restaurantID, id); err != nil {
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

	objectName, err := h.mediaService.UploadStockImage(ctx, restaurantID, id, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return common.SendServerError(c, "Failed to store image: "+err.Error())
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
