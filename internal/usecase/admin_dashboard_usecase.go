package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 管理画面トップの集計と監査ログの閲覧。
type AdminDashboardUsecase struct {
	customers repo.CustomerRepository
	products  repo.ProductRepository
	orders    repo.OrderRepository
	audit     repo.AuditLogRepository
}

func NewAdminDashboardUsecase(
	customers repo.CustomerRepository,
	products repo.ProductRepository,
	orders repo.OrderRepository,
	audit repo.AuditLogRepository,
) *AdminDashboardUsecase {
	return &AdminDashboardUsecase{
		customers: customers,
		products:  products,
		orders:    orders,
		audit:     audit,
	}
}

type DashboardSummary struct {
	Customers     int64 `json:"customers"`
	Products      int64 `json:"products"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
}

func (u *AdminDashboardUsecase) Summary(ctx context.Context) (DashboardSummary, error) {
	customers, err := u.customers.CountAll(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.CountAll(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, err := u.orders.CountAll(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pending, err := u.orders.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardSummary{
		Customers:     customers,
		Products:      products,
		Orders:        orders,
		PendingOrders: pending,
	}, nil
}

const defaultAuditLogLimit = 100

// RecentAuditLogs は管理者操作の監査ログ（新しい順）。
func (u *AdminDashboardUsecase) RecentAuditLogs(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if limit == 0 {
		limit = defaultAuditLogLimit
	}

	logs, err := u.audit.List(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
