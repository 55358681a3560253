package usecase_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) SetActive(ctx context.Context, productID int64, isActive bool) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in CartUsecase tests")
}

// =====================
// Helpers
// =====================

func newLoggedInSession(t *testing.T, st session.Store) *session.Session {
	t.Helper()

	s := session.New(time.Hour)
	s.CustomerID = 1
	s.CustomerName = "alice"
	assert.NoError(t, st.Save(context.Background(), s))
	return s
}

func activeProduct(id int64, name string, price float64, stock int64) model.Product {
	return model.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		IsActive: true,
	}
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "coffee", 10.0, 5), nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	out, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(30.0)))

	pRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_MergesQuantity(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "coffee", 10.0, 10), nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)

	out, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(6), out.Items[0].Quantity)
}

func TestCartUsecase_AddToCart_RejectsWhenRequestExceedsStock(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "coffee", 10.0, 5), nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	//一度に在庫より多く頼んだ場合だけ追加時に弾く
	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 6})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)

	out, err := uc.GetCart(ctx, s)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
}

// 追加時は今回分しか見ないので、加算の結果が在庫を超えてもカートには入る。
// 超過分はチェックアウトの再検証で止まる。
func TestCartUsecase_AddToCart_MergedQuantityMayExceedStock(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "coffee", 10.0, 5), nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	//3+3=6 > 在庫5 でも両方成功する
	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)

	out, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(6), out.Items[0].Quantity)
}

func TestCartUsecase_AddToCart_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	p := activeProduct(1, "coffee", 10.0, 5)
	p.IsActive = false

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 99, Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	uc := usecase.NewCartUsecase(new(CartProductRepoMock), st)
	s := newLoggedInSession(t, st)

	_, err := uc.AddToCart(context.Background(), s, usecase.AddCartInput{ProductID: 1, Quantity: 0})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// =====================
// Remove / Get
// =====================

func TestCartUsecase_RemoveFromCart_AbsentLineIsNoop(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	uc := usecase.NewCartUsecase(new(CartProductRepoMock), st)
	s := newLoggedInSession(t, st)

	out, err := uc.RemoveFromCart(ctx, s, 99)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCartUsecase_RemoveFromCart_DeletesLine(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStore()
	defer st.Close()

	pRepo := new(CartProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "coffee", 10.0, 5), nil)

	uc := usecase.NewCartUsecase(pRepo, st)
	s := newLoggedInSession(t, st)

	_, err := uc.AddToCart(ctx, s, usecase.AddCartInput{ProductID: 1, Quantity: 2})
	assert.NoError(t, err)

	out, err := uc.RemoveFromCart(ctx, s, 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.Equal(decimal.Zero))
}

func TestCartUsecase_GetCart_Empty(t *testing.T) {
	st := session.NewMemoryStore()
	defer st.Close()

	uc := usecase.NewCartUsecase(new(CartProductRepoMock), st)
	s := newLoggedInSession(t, st)

	out, err := uc.GetCart(context.Background(), s)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.Equal(decimal.Zero))
}
