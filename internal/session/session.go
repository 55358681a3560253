package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// カートの1明細。
// 名前と単価は「カートに入れた時点」のスナップショット。
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// セッションに紐づくカート。DBには保存しない。
// 明細は追加順を保つ。
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add は同一商品なら数量を加算し、無ければ明細を末尾に足す。
// 加算時のスナップショット（名前・単価）は最初の明細のものを保つ。
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Remove は明細を消す。無ければ何もしない（エラーにしない）。
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Find は商品IDで明細を探す。
func (c *Cart) Find(productID int64) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Total は Σ 単価×数量。副作用なし。
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ブラウザセッション1つ分の状態。
// 会員と管理者のログインは別フィールドで持つ（同居できる）。
type Session struct {
	ID string `json:"id"`

	//0なら未ログイン
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	//0なら管理者未ログイン
	AdminID   int64  `json:"admin_id"`
	AdminName string `json:"admin_name"`

	Cart Cart `json:"cart"`

	ExpiresAt time.Time `json:"expires_at"`
}

// New は空のセッションを発行する。
func New(ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (s *Session) HasCustomer() bool {
	return s.CustomerID > 0
}

func (s *Session) HasAdmin() bool {
	return s.AdminID > 0
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
