package validator

import (
	"net/http"
	"regexp"
	"strings"

	"storefront/internal/usecase"
)

// 雑すぎるメールだけ弾く。厳密なRFC検証はしない。
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// usecase.AuthValidator の実装。
type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

func (v *AuthValidator) ValidateRegister(name string, email string, password string) error {
	if strings.TrimSpace(name) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(strings.TrimSpace(name)) > 100 {
		return usecase.NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if len(password) > 72 {
		//bcryptの入力上限
		return usecase.NewHTTPError(http.StatusBadRequest, "password too long")
	}
	return nil
}

func (v *AuthValidator) ValidateLogin(email string, password string) error {
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

func (v *AuthValidator) validateEmail(email string) error {
	e := strings.TrimSpace(email)
	if e == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if len(e) > 100 || !emailPattern.MatchString(e) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	return nil
}
