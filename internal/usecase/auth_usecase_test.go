package usecase_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mocks
// =====================

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AuthValidatorMock struct{ mock.Mock }

func (m *AuthValidatorMock) ValidateRegister(name, email, password string) error {
	args := m.Called(name, email, password)
	return args.Error(0)
}

func (m *AuthValidatorMock) ValidateLogin(email, password string) error {
	args := m.Called(email, password)
	return args.Error(0)
}

func okValidator() *AuthValidatorMock {
	v := new(AuthValidatorMock)
	v.On("ValidateRegister", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	v.On("ValidateLogin", mock.Anything, mock.Anything).Return(nil)
	return v
}

func hashOf(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(h)
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_HashesPasswordAndNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	var saved *model.Customer
	customers.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.Customer)
		saved.ID = 1
	}).Return(nil)

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	out, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "alice@example.com", out.Email)

	//平文保存しない
	assert.NotEqual(t, "password123", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("password123")))
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	customers.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateEmail)

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
	assert.Equal(t, "email already exists", he.Message)
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	v := new(AuthValidatorMock)
	v.On("ValidateRegister", mock.Anything, mock.Anything, mock.Anything).
		Return(usecase.NewHTTPError(400, "invalid email"))

	customers := new(CustomerRepoMock)
	uc := usecase.NewAuthUsecase(customers, st, v, time.Hour)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "bad"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Login / Logout
// =====================

func TestAuthUsecase_Login_CreatesSession(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.Customer{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "password123"),
	}, nil)

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	s, out, err := uc.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "password123"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.NotEmpty(t, s.ID)
	assert.True(t, s.HasCustomer())

	//ストアにも保存されている
	cur, err := st.Get(ctx, s.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cur.CustomerID)
	assert.Equal(t, "Alice", cur.CustomerName)
}

func TestAuthUsecase_Login_ReusesCurrentSession(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.Customer{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "password123"),
	}, nil)

	//管理者として作られた既存セッション
	current := session.New(time.Hour)
	current.AdminID = 9
	current.AdminName = "root"
	assert.NoError(t, st.Save(ctx, current))

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	s, _, err := uc.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "password123"}, current)
	assert.NoError(t, err)
	assert.Equal(t, current.ID, s.ID)
	assert.True(t, s.HasCustomer())
	assert.True(t, s.HasAdmin())
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.Customer{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "password123"),
	}, nil)

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	_, _, err := uc.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "wrong"}, nil)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "invalid email or password", he.Message)
}

func TestAuthUsecase_Login_UnknownEmailSameMessage(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.Customer{}, repo.ErrNotFound)

	uc := usecase.NewAuthUsecase(customers, st, okValidator(), time.Hour)

	_, _, err := uc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "whatever1"}, nil)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "invalid email or password", he.Message)
}

func TestAuthUsecase_Logout_DeletesSession(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	s := session.New(time.Hour)
	s.CustomerID = 1
	assert.NoError(t, st.Save(ctx, s))

	uc := usecase.NewAuthUsecase(new(CustomerRepoMock), st, okValidator(), time.Hour)

	assert.NoError(t, uc.Logout(ctx, s))

	_, err := st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
