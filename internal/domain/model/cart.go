package model

import "time"

// 1顧客につきカートは最大1つ。空になったら行ごと削除する（論理削除しない）。
// total_amount は明細の line_subtotal 合計。更新のたびに全件から再計算する。
type Cart struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	TotalAmount int64     `gorm:"not null;default:0" json:"total_amount"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
