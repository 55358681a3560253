package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//セッションに会員ログインが入っているかを確認します。

func CustomerGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := SessionFromContext(c)
			if !ok || !s.HasCustomer() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}
