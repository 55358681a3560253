package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	audit  repo.AuditLogRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository, audit repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, audit: audit}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 全注文（新しい順）。
func (u *AdminOrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// ステータス更新。
// 遷移表は持たない：空でない文字列なら何でも受ける（開いた集合のまま）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if newStatus == "" {
		return NewHTTPError(http.StatusBadRequest, "status required")
	}
	if len(newStatus) > 50 {
		return NewHTTPError(http.StatusBadRequest, "status too long")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（UPDATE_ORDER_STATUS）
	beforeJSON := `{"status":"` + o.Status + `"}`
	afterJSON := `{"status":"` + newStatus + `"}`
	if err := u.audit.Create(ctx, model.AuditLog{
		ActorAdminID: adminID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
