package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 顧客向け一覧の検索条件
type ProductListQuery struct {
	//商品名の部分一致（大文字小文字は区別しない）
	Search string

	//0以下なら無制限
	Limit int
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中（is_active=true）のみ
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, error)

	//管理者向け。activeフラグに関係なく全件
	ListAll(ctx context.Context) ([]model.Product, error)

	FindByID(ctx context.Context, productID int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)

	//可変フィールドの上書き。対象が無ければ ErrNotFound
	Update(ctx context.Context, p model.Product) error

	//論理削除/復帰。行は消さない
	SetActive(ctx context.Context, productID int64, isActive bool) error

	CountAll(ctx context.Context) (int64, error)
}
