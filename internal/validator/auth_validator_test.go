package validator_test

import (
	"strings"
	"testing"

	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestAuthValidator_ValidateRegister(t *testing.T) {
	v := validator.NewAuthValidator()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		wantOK   bool
	}{
		{"正常", "Alice", "alice@example.com", "password123", true},
		{"名前なし", "  ", "alice@example.com", "password123", false},
		{"名前が長すぎ", strings.Repeat("a", 101), "alice@example.com", "password123", false},
		{"メールなし", "Alice", "", "password123", false},
		{"メール形式不正", "Alice", "not-an-email", "password123", false},
		{"@の後にドットなし", "Alice", "alice@example", "password123", false},
		{"パスワード7文字", "Alice", "alice@example.com", "1234567", false},
		{"パスワード8文字ちょうど", "Alice", "alice@example.com", "12345678", true},
		{"パスワード73文字", "Alice", "alice@example.com", strings.Repeat("x", 73), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(tc.userName, tc.email, tc.password)
			if tc.wantOK {
				assert.NoError(t, err)
				return
			}
			he, ok := usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, 400, he.Status)
		})
	}
}

func TestAuthValidator_ValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator()

	assert.NoError(t, v.ValidateLogin("alice@example.com", "anything"))

	err := v.ValidateLogin("alice@example.com", "")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	err = v.ValidateLogin("bad", "password123")
	_, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)
}
