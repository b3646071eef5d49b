package model

import "time"

// 店舗プロフィール。is_verified は運営が審査後に立てる（審査フロー自体は対象外）。
// 未認証の店舗の商品はカートに入れられない。
type Shop struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`
	DeliveryFee int64     `gorm:"not null;default:0" json:"delivery_fee"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
