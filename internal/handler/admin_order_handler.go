package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orders 系のHTTP
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo) {
	guard := middleware.AdminGuard()

	e.GET("/admin/orders", h.list, guard)
	e.POST("/admin/update_status/:id", h.updateStatus, guard)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.UpdateStatus(c.Request().Context(), s.AdminID, orderID, usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "status updated"})
}
