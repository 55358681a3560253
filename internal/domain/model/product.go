package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	//在庫は条件付きUPDATEでしか減らさない（負にならない）
	Stock int64 `gorm:"not null" json:"stock"`

	//falseなら顧客カタログから除外（行は消さない）
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
