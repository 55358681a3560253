package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//セッションに管理者ログインが入っているかを確認します。
//会員ログインだけでは通さない。

func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := SessionFromContext(c)
			if !ok || !s.HasAdmin() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}
