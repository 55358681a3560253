package middleware

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session"

	//echo.Context に入れる *session.Session のキー
	CtxSessionKey = "session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// cookieの値はセッションIDを載せた署名付きJWT。
// セッション本体（ログイン情報・カート）はサーバー側ストアに置く。
func signSessionID(secret string, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

func parseSessionID(secret string, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid sid")
	}
	return sid, nil
}

// IssueSessionCookie は署名済みセッションcookieをレスポンスに付ける。
func IssueSessionCookie(c echo.Context, secret string, s *session.Session, secure bool) error {
	signed, err := signSessionID(secret, s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie はcookieを失効させる。
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionResolver はcookieを検証してセッションをcontextに載せる。
// cookieが無い・不正・期限切れでも拒否はしない（ゲスト扱いで次へ）。
func SessionResolver(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := parseSessionID(secret, cookie.Value)
			if err != nil {
				return next(c)
			}

			s, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return next(c)
			}

			c.Set(CtxSessionKey, s)
			return next(c)
		}
	}
}

// SessionFromContext は SessionResolver が載せたセッションを取り出す。
func SessionFromContext(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(CtxSessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}
