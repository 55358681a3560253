package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 会員の永続化（保存・取得）だけを約束。
type CustomerRepository interface {
	//新規作成。メール重複は ErrDuplicateEmail を返す。
	Create(ctx context.Context, customer *model.Customer) error

	//メールから会員を1件取得する。
	FindByEmail(ctx context.Context, email string) (model.Customer, error)

	//ダッシュボード用の件数
	CountAll(ctx context.Context) (int64, error)
}
