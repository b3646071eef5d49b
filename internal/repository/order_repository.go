package repository

import (
	"campuseats/internal/domain/model"
	"context"
	"time"
)

// 店舗用の注文一覧
type ShopOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	ListByShopID(ctx context.Context, shopID int64, f ShopOrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// 現在ステータスが from のときだけ to へ更新する（条件付き一発更新）。
	// 他リクエストと競合して0行更新ならそのまま false を返し、
	// 呼び出し側が現在値を読み直してエラーにする。
	UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error)
}
