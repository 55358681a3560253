package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /register /login /logout のHTTP
type AuthHandler struct {
	uc           *usecase.AuthUsecase
	secret       string
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, secret string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		secret:       secret,
		cookieSecure: cookieSecure,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.GET("/logout", h.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//既存セッションがあれば引き継ぐ
	current, _ := middleware.SessionFromContext(c)

	s, out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
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

// ログアウトはセッションごと破棄。カートも消える。
func (h *AuthHandler) logout(c echo.Context) error {
	if s, ok := middleware.SessionFromContext(c); ok {
		if err := h.uc.Logout(c.Request().Context(), s); err != nil {
			return writeError(c, err)
		}
	}

	middleware.ClearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
