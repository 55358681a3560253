package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"

	"github.com/shopspring/decimal"
)

// 注文確定（チェックアウト）と注文履歴。
type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	sessions session.Store
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, sessions session.Store) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		orders:   orders,
		sessions: sessions,
	}
}

type OrderOutput struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Checkout はカート全明細を注文に変換して在庫を減らす。
// 全体が1トランザクション。どれか1明細でも在庫が足りなければ
// 注文も減算も一切残さない（all-or-nothing）。
func (u *OrderUsecase) Checkout(ctx context.Context, s *session.Session) ([]OrderOutput, error) {
	if s == nil || !s.HasCustomer() {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//カートはストアから読み直す（contextのコピーは古い可能性がある）
	cur, err := u.sessions.Get(ctx, s.ID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	if cur.Cart.IsEmpty() {
		return nil, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	outs := make([]OrderOutput, 0, len(cur.Cart.Lines))

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, line := range cur.Cart.Lines {
			//カートに入れた後に非公開化された商品は注文全体を止める
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusConflict, "product no longer available: "+line.Name)
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusConflict, "product no longer available: "+line.Name)
			}

			//条件付き減算。足りなければ false（ここが唯一の在庫の真実）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock for "+line.Name)
			}

			//単価はカート追加時点のスナップショット
			total := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))

			created, err := r.Orders().Create(ctx, model.Order{
				CustomerID:          cur.CustomerID,
				ProductID:           line.ProductID,
				ProductNameSnapshot: line.Name,
				UnitPriceSnapshot:   line.UnitPrice,
				Quantity:            line.Quantity,
				TotalAmount:         total,
				Status:              model.OrderStatusPending,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			outs = append(outs, toOrderOutput(created))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	//commitできたらカートを空にする
	clearErr := u.sessions.Update(ctx, s.ID, func(cur *session.Session) error {
		cur.Cart.Clear()
		return nil
	})
	if clearErr == nil {
		s.Cart.Clear()
	}

	return outs, nil
}

// ListMyOrders は自分の注文履歴（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, s *session.Session) ([]OrderOutput, error) {
	if s == nil || !s.HasCustomer() {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByCustomerID(ctx, s.CustomerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:          o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductNameSnapshot,
		UnitPrice:   o.UnitPriceSnapshot,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}
