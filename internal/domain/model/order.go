package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 初期ステータス。以降は管理者が自由な文字列で更新する（閉じた遷移表は持たない）。
const OrderStatusPending = "Pending"

// 注文。カート1明細につき1行。
// 商品名と単価は注文時点のスナップショットを持ち、後の商品編集に影響されない。
type Order struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64 `gorm:"not null;index" json:"customer_id"`
	ProductID  int64 `gorm:"not null;index" json:"product_id"`

	ProductNameSnapshot string          `gorm:"type:varchar(100);not null" json:"product_name"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity            int64           `gorm:"not null" json:"quantity"`

	//total_amount = unit_price_snapshot * quantity
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	Status    string    `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
