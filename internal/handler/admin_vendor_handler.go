package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/vendors（管理者の出店審査）
type AdminVendorHandler struct {
	uc *usecase.VendorApprovalUsecase
}

func NewAdminVendorHandler(uc *usecase.VendorApprovalUsecase) *AdminVendorHandler {
	return &AdminVendorHandler{uc: uc}
}

type VendorApprovalRequest struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

func (h *AdminVendorHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/vendors")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.PUT("/:id/approval", h.decide)
}

func (h *AdminVendorHandler) decide(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req VendorApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Decide(c.Request().Context(), id, usecase.VendorApprovalInput{
		Approved: req.Approved,
		Reason:   req.Reason,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
