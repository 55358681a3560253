package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	repo "storefront/internal/repository"
	"storefront/internal/session"

	"golang.org/x/crypto/bcrypt"
)

type AdminDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type AdminLoginInput struct {
	Username string
	Password string
}

// 管理者のログイン・ログアウト。
// 会員と同じくbcrypt照合（平文比較の旧実装は採らない）。
type AdminAuthUsecase struct {
	admins     repo.AdminRepository
	sessions   session.Store
	sessionTTL time.Duration
}

func NewAdminAuthUsecase(admins repo.AdminRepository, sessions session.Store, sessionTTL time.Duration) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		admins:     admins,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (u *AdminAuthUsecase) Login(ctx context.Context, in AdminLoginInput, current *session.Session) (*session.Session, AdminDTO, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, AdminDTO{}, NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	admin, err := u.admins.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, AdminDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid admin credentials")
	}
	if err != nil {
		return nil, AdminDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, AdminDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid admin credentials")
	}

	s := current
	if s == nil {
		s = session.New(u.sessionTTL)
	}
	s.AdminID = admin.ID
	s.AdminName = admin.Username

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, AdminDTO{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return s, AdminDTO{ID: admin.ID, Username: admin.Username}, nil
}

// Logout は管理者ログインだけ外す。
// 同じブラウザの会員ログインとカートは残す。
func (u *AdminAuthUsecase) Logout(ctx context.Context, s *session.Session) error {
	if s == nil {
		return nil
	}

	err := u.sessions.Update(ctx, s.ID, func(cur *session.Session) error {
		cur.AdminID = 0
		cur.AdminName = ""
		return nil
	})
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}
