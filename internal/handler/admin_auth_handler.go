package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin（ログイン）と /admin/dashboard /admin/audit_logs /admin/logout のHTTP
type AdminAuthHandler struct {
	uc           *usecase.AdminAuthUsecase
	dashboard    *usecase.AdminDashboardUsecase
	secret       string
	cookieSecure bool
}

// DI
func NewAdminAuthHandler(
	uc *usecase.AdminAuthUsecase,
	dashboard *usecase.AdminDashboardUsecase,
	secret string,
	cookieSecure bool,
) *AdminAuthHandler {
	return &AdminAuthHandler{
		uc:           uc,
		dashboard:    dashboard,
		secret:       secret,
		cookieSecure: cookieSecure,
	}
}

type AdminLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AdminAuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/admin", h.login)
	e.GET("/admin/logout", h.logout)
	e.GET("/admin/dashboard", h.dashboardSummary, middleware.AdminGuard())
	e.GET("/admin/audit_logs", h.auditLogs, middleware.AdminGuard())
}

func (h *AdminAuthHandler) login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	current, _ := middleware.SessionFromContext(c)

	s, out, err := h.uc.Login(c.Request().Context(), usecase.AdminLoginInput{
		Username: req.Username,
		Password: req.Password,
	}, current)
	if err != nil {
		return writeError(c, err)
	}

	if err := middleware.IssueSessionCookie(c, h.secret, s, h.cookieSecure); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, out)
}

// 管理者ログインだけ外す（会員ログインとカートは残す）
func (h *AdminAuthHandler) logout(c echo.Context) error {
	if s, ok := middleware.SessionFromContext(c); ok {
		if err := h.uc.Logout(c.Request().Context(), s); err != nil {
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "admin logged out"})
}

func (h *AdminAuthHandler) dashboardSummary(c echo.Context) error {
	out, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminAuthHandler) auditLogs(c echo.Context) error {
	// limit（未指定なら既定値）
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	logs, err := h.dashboard.RecentAuditLogs(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, logs)
}
