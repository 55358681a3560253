package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout /myorders のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CheckoutResponse struct {
	Orders []usecase.OrderOutput `json:"orders"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	guard := middleware.CustomerGuard()

	e.GET("/checkout", h.checkout, guard)
	e.GET("/myorders", h.myOrders, guard)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.uc.Checkout(c.Request().Context(), s)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{Orders: orders})
}

func (h *OrderHandler) myOrders(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), s)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}
