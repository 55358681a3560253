package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func newEchoContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issuedCookie(t *testing.T, s *session.Session) *http.Cookie {
	t.Helper()

	c, rec := newEchoContext(t)
	assert.NoError(t, mw.IssueSessionCookie(c, testSecret, s, false))

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionResolver_RoundTrip(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	s := session.New(time.Hour)
	s.CustomerID = 1
	s.CustomerName = "alice"
	assert.NoError(t, st.Save(context.Background(), s))

	c, _ := newEchoContext(t, issuedCookie(t, s))

	var resolved *session.Session
	h := mw.SessionResolver(testSecret, st)(func(c echo.Context) error {
		resolved, _ = mw.SessionFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.NotNil(t, resolved)
	assert.Equal(t, s.ID, resolved.ID)
	assert.Equal(t, int64(1), resolved.CustomerID)
}

func TestSessionResolver_NoCookieIsGuest(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	c, _ := newEchoContext(t)

	h := mw.SessionResolver(testSecret, st)(func(c echo.Context) error {
		_, ok := mw.SessionFromContext(c)
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
}

func TestSessionResolver_TamperedCookieIsGuest(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	s := session.New(time.Hour)
	assert.NoError(t, st.Save(context.Background(), s))

	ck := issuedCookie(t, s)
	ck.Value = ck.Value + "x" //署名を壊す

	c, _ := newEchoContext(t, ck)

	h := mw.SessionResolver(testSecret, st)(func(c echo.Context) error {
		_, ok := mw.SessionFromContext(c)
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
}

func TestSessionResolver_UnknownSessionIsGuest(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	//ストアに保存しないまま署名だけ有効なcookie
	s := session.New(time.Hour)

	c, _ := newEchoContext(t, issuedCookie(t, s))

	h := mw.SessionResolver(testSecret, st)(func(c echo.Context) error {
		_, ok := mw.SessionFromContext(c)
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
}

func TestCustomerGuard(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("会員セッションなしは401", func(t *testing.T) {
		c, rec := newEchoContext(t)

		assert.NoError(t, mw.CustomerGuard()(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("管理者だけのセッションも401", func(t *testing.T) {
		c, rec := newEchoContext(t)
		s := session.New(time.Hour)
		s.AdminID = 9
		c.Set(mw.CtxSessionKey, s)

		assert.NoError(t, mw.CustomerGuard()(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("会員セッションは通す", func(t *testing.T) {
		c, rec := newEchoContext(t)
		s := session.New(time.Hour)
		s.CustomerID = 1
		c.Set(mw.CtxSessionKey, s)

		assert.NoError(t, mw.CustomerGuard()(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminGuard(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("管理者セッションなしは401", func(t *testing.T) {
		c, rec := newEchoContext(t)

		assert.NoError(t, mw.AdminGuard()(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("会員だけのセッションも401", func(t *testing.T) {
		c, rec := newEchoContext(t)
		s := session.New(time.Hour)
		s.CustomerID = 1
		c.Set(mw.CtxSessionKey, s)

		assert.NoError(t, mw.AdminGuard()(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("管理者セッションは通す", func(t *testing.T) {
		c, rec := newEchoContext(t)
		s := session.New(time.Hour)
		s.AdminID = 9
		c.Set(mw.CtxSessionKey, s)

		assert.NoError(t, mw.AdminGuard()(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
