package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	products repo.ProductRepository
	audit    repo.AuditLogRepository
}

// DI
func NewProductUsecase(products repo.ProductRepository, audit repo.AuditLogRepository) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		audit:    audit,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Search string
	Limit  int
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

// 顧客向け一覧。公開中（is_active=true）のみ。
func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	if in.Limit < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, err := u.products.ListActive(ctx, repo.ProductListQuery{
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

// 非公開商品は顧客には「存在しない」扱い。
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// 管理者向け一覧。activeフラグに関係なく全件。
func (u *ProductUsecase) AdminListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	ImageURL    string
}

func validateAdminProductInput(in AdminProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !in.Price.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminID int64, in AdminProductInput) (model.Product, error) {
	if adminID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAdminProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    true,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminID int64, productID int64, in AdminProductInput) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateAdminProductInput(in); err != nil {
		return err
	}

	//変更前（監査ログ用）
	before, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.products.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ
	if err := u.audit.Create(ctx, model.AuditLog{
		ActorAdminID: adminID,
		Action:       model.AuditActionUpdateProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   fmt.Sprintf(`{"price":"%s","stock":%d}`, before.Price.String(), before.Stock),
		AfterJSON:    fmt.Sprintf(`{"price":"%s","stock":%d}`, in.Price.String(), in.Stock),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 論理削除/復帰。過去の注文からの参照は残る。
func (u *ProductUsecase) AdminSetProductActive(ctx context.Context, adminID int64, productID int64, isActive bool) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.products.SetActive(ctx, productID, isActive)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorAdminID: adminID,
		Action:       model.AuditActionSetProductActive,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		AfterJSON:    fmt.Sprintf(`{"is_active":%t}`, isActive),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
