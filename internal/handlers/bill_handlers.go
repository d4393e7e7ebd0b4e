package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/models"
	"tablemate/internal/services"
)

// BillHandlers handles HTTP requests for payment and billing
type BillHandlers struct {
	billingService services.BillingServiceInterface
}

func NewBillHandlers(billingService services.BillingServiceInterface) *BillHandlers {
	return &BillHandlers{
		billingService: billingService,
	}
}

// RequestPayment handles POST /tables/:id/request-payment
func (h *BillHandlers) RequestPayment(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	tableID, err := common.ValidateUUID(c.Param("id"), "table_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	orders, err := h.billingService.RequestPaymentByTable(ctx, restaurantID, tableID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Payment requested successfully",
		"orders":  orders,
	})
}

// GenerateBill handles POST /bills
func (h *BillHandlers) GenerateBill(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, ok := common.GetRestaurantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		OrderIDs  []string `json:"order_ids"`
		Tax       *float64 `json:"tax"`
		Tip       *float64 `json:"tip"`
		Discount  *float64 `json:"discount"`
		CardLast4 *string  `json:"card_last4"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.OrderIDs) == 0 {
		return common.SendValidationError(c, "order_ids", "At least one order is required")
	}

	orderIDs := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := common.ValidateUUID(raw, "order_ids")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		orderIDs = append(orderIDs, id)
	}

	breakdown := &models.BillBreakdown{
		Tax:       req.Tax,
		Tip:       req.Tip,
		Discount:  req.Discount,
		CardLast4: req.CardLast4,
	}

	bill, err := h.billingService.GenerateBill(ctx, restaurantID, orderIDs, breakdown)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Bill generated successfully",
		"bill":    bill,
	})
}
