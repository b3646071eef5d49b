package model

import "time"

// カートの明細。複数店舗の明細が同居してよい（チェックアウト時に単一店舗へ絞る）。
// line_subtotal は最後に触った時点の商品価格 × 数量。
// 触っていない明細は部分チェックアウト後も再計算しない。
type CartItem struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID       int64     `gorm:"not null;index" json:"cart_id"`
	ShopID       int64     `gorm:"not null;index" json:"shop_id"`
	ProductID    int64     `gorm:"not null;index" json:"product_id"`
	Quantity     int64     `gorm:"not null" json:"quantity"`
	LineSubtotal int64     `gorm:"not null" json:"line_subtotal"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
