package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)

	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//会員の注文履歴（新しい順）
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)

	//管理者向け全件（新しい順）
	ListAll(ctx context.Context) ([]model.Order, error)

	//ステータスを無条件に上書き。対象が無ければ ErrNotFound
	UpdateStatus(ctx context.Context, orderID int64, status string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
