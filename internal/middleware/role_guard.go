package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleがcustomerかどうかを確認します。
func CustomerRoleGuard() echo.MiddlewareFunc {
	return requireRole("customer", "customer only")
}

// 店舗アカウントだけ許可。
func ShopRoleGuard() echo.MiddlewareFunc {
	return requireRole("shop", "shop only")
}

func requireRole(want string, deniedMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != want {
				return c.JSON(http.StatusForbidden, errorJSON(deniedMsg))
			}

			return next(c)
		}
	}
}
