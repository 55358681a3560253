package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 管理者の保存・取得の約束。
type AdminRepository interface {
	//新規作成。ユーザー名重複は ErrDuplicateUsername を返す。
	Create(ctx context.Context, admin *model.Admin) error

	FindByUsername(ctx context.Context, username string) (model.Admin, error)

	//起動時のブートストラップ判定に使う
	CountAll(ctx context.Context) (int64, error)
}
