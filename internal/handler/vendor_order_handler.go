package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /vendor/orders（ベンダー側）
type VendorOrderHandler struct {
	uc *usecase.VendorOrderUsecase
}

func NewVendorOrderHandler(uc *usecase.VendorOrderUsecase) *VendorOrderHandler {
	return &VendorOrderHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason"`
}

func (h *VendorOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/vendor/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.VendorRoleGuard())

	g.GET("", h.list)
	g.PUT("/:id/status", h.updateStatus)
}

func (h *VendorOrderHandler) list(c echo.Context) error {
	vendorID, ok := getVendorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), vendorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VendorOrderHandler) updateStatus(c echo.Context) error {
	vendorID, ok := getVendorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), vendorID, id, usecase.UpdateOrderStatusInput{
		Status:             req.Status,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
