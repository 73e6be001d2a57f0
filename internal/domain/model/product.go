package model

import (
	"time"

	"gorm.io/gorm"
)

// stock_quantityが在庫の唯一の情報源。
// 注文作成で減算、キャンセルで加算する。過去の注文からは計算しない。
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID      int64          `gorm:"not null;index" json:"vendor_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	DiscountPrice *int64         `json:"discount_price,omitempty"`
	StockQuantity int64          `gorm:"not null" json:"stock_quantity"`
	SKU           string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"sku"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Vendor Vendor `gorm:"foreignKey:VendorID;constraint:OnDelete:RESTRICT" json:"-"`
}

// 販売価格（割引があれば割引価格）
func (p Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
