package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(name string, email string, password string) error
	ValidateLogin(email string, password string) error
}

type CustomerDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// 会員の登録・ログイン・ログアウト。
// セッションの発行/破棄もここで行い、cookieの発行はhandlerに任せる。
type AuthUsecase struct {
	customers  repo.CustomerRepository
	sessions   session.Store
	validator  AuthValidator
	sessionTTL time.Duration
}

func NewAuthUsecase(
	customers repo.CustomerRepository,
	sessions session.Store,
	validator AuthValidator,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		customers:  customers,
		sessions:   sessions,
		validator:  validator,
		sessionTTL: sessionTTL,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (CustomerDTO, error) {
	if err := u.validator.ValidateRegister(in.Name, in.Email, in.Password); err != nil {
		return CustomerDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	customer := &model.Customer{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(pwHash),
	}

	if err := u.customers.Create(ctx, customer); err != nil {
		//ユニーク制約違反
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return CustomerDTO{}, NewHTTPError(http.StatusConflict, "email already exists")
		}
		return CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCustomerDTO(customer), nil
}

// Login は認証に成功したらセッションを発行して返す。
// 既存セッションがあればそれを引き継ぐ（管理者ログインと同居できる）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput, current *session.Session) (*session.Session, CustomerDTO, error) {
	if err := u.validator.ValidateLogin(in.Email, in.Password); err != nil {
		return nil, CustomerDTO{}, err
	}

	customer, err := u.customers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, repo.ErrNotFound) {
		//メール未登録もパスワード不一致も同じメッセージにする
		return nil, CustomerDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, CustomerDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	s := current
	if s == nil {
		s = session.New(u.sessionTTL)
	}
	s.CustomerID = customer.ID
	s.CustomerName = customer.Name

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return s, toCustomerDTO(&customer), nil
}

// Logout はセッションを丸ごと破棄する。カートも一緒に消える。
func (u *AuthUsecase) Logout(ctx context.Context, s *session.Session) error {
	if s == nil {
		return nil
	}
	if err := u.sessions.Delete(ctx, s.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}

func toCustomerDTO(c *model.Customer) CustomerDTO {
	return CustomerDTO{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}
}
