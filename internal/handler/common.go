package handler

import (
	"net/http"

	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	ProductID int64  `json:"product_id,omitempty"`
	Available *int64 `json:"available,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	// 在庫不足は商品と残数を付けて返す
	if ie, ok := usecase.AsInsufficientStockError(err); ok {
		available := ie.Available
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     ie.Error(),
			ProductID: ie.ProductID,
			Available: &available,
		})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func getVendorIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxVendorIDKey)
	vendorID, ok := raw.(int64)
	if !ok || vendorID <= 0 {
		return 0, false
	}
	return vendorID, true
}
