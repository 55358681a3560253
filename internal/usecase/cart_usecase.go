package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "storefront/internal/repository"
	"storefront/internal/session"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッション上のカートの業務ロジックです。
// カート本体はDBではなくセッションストアに置く。
type CartUsecase struct {
	products repo.ProductRepository
	sessions session.Store
}

func NewCartUsecase(products repo.ProductRepository, sessions session.Store) *CartUsecase {
	return &CartUsecase{
		products: products,
		sessions: sessions,
	}
}

type CartLineView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartLineView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 在庫チェックは今回の追加分だけ。加算後の合計が在庫を超えていても
// ここでは弾かず、チェックアウト時の再検証に任せる。
func (u *CartUsecase) AddToCart(ctx context.Context, s *session.Session, in AddCartInput) (CartView, error) {
	if in.ProductID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック（公開のみ）
	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	//今回頼んだ数が在庫を超えていたら弾く
	if in.Quantity > p.Stock {
		return CartView{}, NewHTTPError(http.StatusConflict, "out of stock")
	}

	var view CartView

	//追加はストア側で直列化される（同一セッションの同時リクエスト対策）
	err = u.sessions.Update(ctx, s.ID, func(cur *session.Session) error {
		cur.Cart.Add(session.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  in.Quantity,
		})

		view = toCartView(&cur.Cart)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return CartView{}, err
	}

	return view, nil
}

// GetCart はカートの中身と合計を返す。副作用なし。
func (u *CartUsecase) GetCart(ctx context.Context, s *session.Session) (CartView, error) {
	cur, err := u.sessions.Get(ctx, s.ID)
	if errors.Is(err, session.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return toCartView(&cur.Cart), nil
}

// RemoveFromCart は明細を消す。無くてもエラーにしない。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, s *session.Session, productID int64) (CartView, error) {
	if productID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	var view CartView

	err := u.sessions.Update(ctx, s.ID, func(cur *session.Session) error {
		cur.Cart.Remove(productID)
		view = toCartView(&cur.Cart)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return CartView{}, err
	}

	return view, nil
}

func toCartView(c *session.Cart) CartView {
	items := make([]CartLineView, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, CartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)),
		})
	}

	return CartView{Items: items, Total: c.Total()}
}
