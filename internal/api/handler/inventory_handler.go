package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// InventoryHandler handles stock mutation and reporting endpoints.
type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id"
// @Param        body  body      quantityRequest  true  "Units to purchase"
// @Success      200   {object}  purchaseResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.inventory.Purchase(c.Request().Context(), c.Param("id"), req.Quantity, actorID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Purchase successful", toPurchaseResponse(result))
}

// Restock handles POST /api/sweets/:id/restock. Admin-only via route middleware.
//
// @Summary      Restock a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id"
// @Param        body  body      quantityRequest  true  "Units to add"
// @Success      200   {object}  restockResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.inventory.Restock(c.Request().Context(), c.Param("id"), req.Quantity, actorID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Restock successful", toRestockResponse(result))
}

// LowStock handles GET /api/inventory/low-stock?threshold. Admin-only.
//
// @Summary      Low stock report
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        threshold  query     int  false  "Quantity threshold (default 10)"
// @Success      200        {object}  lowStockResponse
// @Failure      403        {object}  errorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c echo.Context) error {
	threshold := intQuery(c, "threshold", 0)
	if threshold <= 0 {
		threshold = 10
	}

	items, err := h.inventory.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", toLowStockResponse(items, threshold))
}
