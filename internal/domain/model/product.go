package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "available"
	ProductStatusUnavailable ProductStatus = "unavailable"
)

// 価格は整数ペソ。available 以外はカート追加も注文確定も不可。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID      int64          `gorm:"not null;index" json:"shop_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Status      ProductStatus  `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
