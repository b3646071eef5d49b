package model

import "time"

type NotificationType string

const (
	NotificationTypeNewOrder    NotificationType = "new_order"
	NotificationTypeOrderStatus NotificationType = "order_status"
)

// 注文イベントの通知。作成は best-effort（失敗しても本処理は巻き戻さない）。
// 既読管理・配信は通知サブシステム側の仕事。
type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64            `gorm:"not null;index" json:"user_id"`
	OrderID   *int64           `gorm:"index" json:"order_id,omitempty"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}
