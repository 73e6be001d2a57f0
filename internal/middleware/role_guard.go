package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleを確認する。

func AdminRoleGuard() echo.MiddlewareFunc {
	return requireRole(RoleAdmin, "admin only")
}

func VendorRoleGuard() echo.MiddlewareFunc {
	return requireRole(RoleVendor, "vendor only")
}

func requireRole(required string, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != required {
				return c.JSON(http.StatusForbidden, errorJSON(message))
			}

			return next(c)
		}
	}
}
