package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin/products 系のHTTP
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

// priceはform値なので文字列で受けてdecimalに変換する
type AdminProductRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	Stock       int64  `json:"stock" form:"stock"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo) {
	guard := middleware.AdminGuard()

	e.GET("/admin/products", h.list, guard)
	e.POST("/admin/add", h.create, guard)
	e.POST("/admin/edit/:id", h.update, guard)
	e.GET("/admin/delete/:id", h.deactivate, guard)
	e.GET("/admin/activate/:id", h.activate, guard)
}

func (r AdminProductRequest) toInput() (usecase.AdminProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return usecase.AdminProductInput{}, err
	}

	return usecase.AdminProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
	}, nil
}

func (h *AdminProductHandler) list(c echo.Context) error {
	products, err := h.uc.AdminListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	p, err := h.uc.AdminCreateProduct(c.Request().Context(), s.AdminID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	if err := h.uc.AdminUpdateProduct(c.Request().Context(), s.AdminID, productID, in); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "product updated"})
}

// 論理削除。行は消さない
func (h *AdminProductHandler) deactivate(c echo.Context) error {
	return h.setActive(c, false, "product deactivated")
}

func (h *AdminProductHandler) activate(c echo.Context) error {
	return h.setActive(c, true, "product activated")
}

func (h *AdminProductHandler) setActive(c echo.Context, isActive bool, msg string) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminSetProductActive(c.Request().Context(), s.AdminID, productID, isActive); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
