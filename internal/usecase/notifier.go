package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"
)

// 注文イベントを相手側アクターへ通知する約束。
// 実装は失敗を呼び出し元へ返さない（best-effort）。
type OrderEventNotifier interface {
	OrderPlaced(ctx context.Context, shopUserID int64, orderID int64, orderCode string)
	StatusChangedByShop(ctx context.Context, customerUserID int64, orderID int64, status model.OrderStatus)
	StatusChangedByCustomer(ctx context.Context, shopUserID int64, orderID int64, status model.OrderStatus)
}

// 通知レコードを書くだけの実装。配信（push/メール）は通知サブシステム側。
type EventNotifier struct {
	notifications repo.NotificationRepository
}

func NewEventNotifier(notifications repo.NotificationRepository) *EventNotifier {
	return &EventNotifier{notifications: notifications}
}

// 店舗へ「新規注文」
func (n *EventNotifier) OrderPlaced(ctx context.Context, shopUserID int64, orderID int64, orderCode string) {
	n.create(ctx, model.Notification{
		UserID:  shopUserID,
		OrderID: &orderID,
		Type:    model.NotificationTypeNewOrder,
		Message: fmt.Sprintf("New order received (%s).", orderCode),
	})
}

// 店舗が進めた遷移を顧客へ
func (n *EventNotifier) StatusChangedByShop(ctx context.Context, customerUserID int64, orderID int64, status model.OrderStatus) {
	n.create(ctx, model.Notification{
		UserID:  customerUserID,
		OrderID: &orderID,
		Type:    model.NotificationTypeOrderStatus,
		Message: customerFacingMessage(status),
	})
}

// 顧客が進めた遷移を店舗へ
func (n *EventNotifier) StatusChangedByCustomer(ctx context.Context, shopUserID int64, orderID int64, status model.OrderStatus) {
	n.create(ctx, model.Notification{
		UserID:  shopUserID,
		OrderID: &orderID,
		Type:    model.NotificationTypeOrderStatus,
		Message: shopFacingMessage(status),
	})
}

// 書き込み失敗はログだけ。ステータス遷移は巻き戻さない。
func (n *EventNotifier) create(ctx context.Context, rec model.Notification) {
	if err := n.notifications.Create(ctx, rec); err != nil {
		slog.WarnContext(ctx, "notification create failed",
			"user_id", rec.UserID,
			"type", string(rec.Type),
			"error", err,
		)
	}
}

func customerFacingMessage(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusAccepted:
		return "Your order has been accepted by the shop."
	case model.OrderStatusPreparing:
		return "Your order is being prepared."
	case model.OrderStatusReadyForPickup:
		return "Your order is ready for pickup."
	case model.OrderStatusOnTheWay:
		return "Your order is on the way."
	case model.OrderStatusDelivered:
		return "Your order has been delivered."
	case model.OrderStatusClaimed:
		return "Your order has been marked as claimed."
	case model.OrderStatusCancelled:
		return "Your order has been cancelled by the shop."
	default:
		return "Your order status has changed to " + string(status) + "."
	}
}

func shopFacingMessage(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusCancelled:
		return "The customer cancelled the order."
	case model.OrderStatusClaimed:
		return "The customer confirmed receipt of the order."
	default:
		return "Order status changed to " + string(status) + "."
	}
}
