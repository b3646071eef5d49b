package repository

import (
	"campuseats/internal/domain/model"
	"context"
)

// 通知レコードの作成だけ。既読化や一覧は通知サブシステム側。
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
}
