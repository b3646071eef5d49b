package usecase

import (
	"context"
	"net/http"
	"strings"

	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"
)

// ShopOrderUsecase は店舗側の注文一覧とステータス遷移。
// 店舗アカウント（userID）から自分の店舗を引き、他店の注文は403にする。
type ShopOrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	shopRepo      repo.ShopRepository
	notifier      OrderEventNotifier
}

func NewShopOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	shopRepo repo.ShopRepository,
	notifier OrderEventNotifier,
) *ShopOrderUsecase {
	return &ShopOrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		shopRepo:      shopRepo,
		notifier:      notifier,
	}
}

// ready_for_pickup 以降に店舗の汎用更新で進められる順序。
// 逆行は許さない。
var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:        0,
	model.OrderStatusAccepted:       1,
	model.OrderStatusPreparing:      2,
	model.OrderStatusReadyForPickup: 3,
	model.OrderStatusOnTheWay:       4,
	model.OrderStatusDelivered:      5,
	model.OrderStatusClaimed:        6,
}

type ShopUpdateOrderStatusInput struct {
	Status string
}

// List は自店舗の注文一覧（status/期間で絞り込み）。
func (u *ShopOrderUsecase) List(ctx context.Context, userID int64, f repo.ShopOrderListFilter) ([]OrderOutput, error) {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return []OrderOutput{}, err
	}

	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, _, err := u.orderRepo.ListByShopID(ctx, shop.ID, f)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

// Detail は自店舗の注文詳細。
func (u *ShopOrderUsecase) Detail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return OrderOutput{}, err
	}

	o, err := u.ownedOrder(ctx, shop, orderID)
	if err != nil {
		return OrderOutput{}, err
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toOrderOutput(o, items)
	out.ShopName = shop.Name
	return out, nil
}

// Accept: pending → accepted
func (u *ShopOrderUsecase) Accept(ctx context.Context, userID int64, orderID int64) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusPending, model.OrderStatusAccepted)
}

// StartPreparing: accepted → preparing
func (u *ShopOrderUsecase) StartPreparing(ctx context.Context, userID int64, orderID int64) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusAccepted, model.OrderStatusPreparing)
}

// MarkReady: preparing → ready_for_pickup
func (u *ShopOrderUsecase) MarkReady(ctx context.Context, userID int64, orderID int64) error {
	return u.transition(ctx, userID, orderID, model.OrderStatusPreparing, model.OrderStatusReadyForPickup)
}

// Cancel は店舗キャンセル。delivered と終端以外ならどこからでも。
func (u *ShopOrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return err
	}

	o, err := u.ownedOrder(ctx, shop, orderID)
	if err != nil {
		return err
	}

	if o.Status.IsTerminal() || o.Status == model.OrderStatusDelivered {
		return NewOrderStateError(o.Status)
	}

	return u.commit(ctx, o, model.OrderStatusCancelled)
}

// UpdateStatus は ready_for_pickup 以降の汎用更新。前進だけ許す。
// cancelled への変更は Cancel と同じ扱い。
func (u *ShopOrderUsecase) UpdateStatus(ctx context.Context, userID int64, orderID int64, in ShopUpdateOrderStatusInput) error {
	target := model.OrderStatus(strings.TrimSpace(in.Status))

	if target == model.OrderStatusCancelled {
		return u.Cancel(ctx, userID, orderID)
	}

	targetRank, known := statusRank[target]
	if !known {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return err
	}

	o, err := u.ownedOrder(ctx, shop, orderID)
	if err != nil {
		return err
	}

	if o.Status.IsTerminal() {
		return NewOrderStateError(o.Status)
	}
	// 汎用更新は ready_for_pickup 以降のみ。それ以前は専用操作で進める
	currentRank := statusRank[o.Status]
	if currentRank < statusRank[model.OrderStatusReadyForPickup] {
		return NewOrderStateError(o.Status)
	}
	if targetRank <= currentRank {
		return NewOrderStateError(o.Status)
	}

	return u.commit(ctx, o, target)
}

// 固定エッジの遷移（accept / prepare / ready）。
func (u *ShopOrderUsecase) transition(ctx context.Context, userID int64, orderID int64, from model.OrderStatus, to model.OrderStatus) error {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return err
	}

	o, err := u.ownedOrder(ctx, shop, orderID)
	if err != nil {
		return err
	}

	if o.Status != from {
		return NewOrderStateError(o.Status)
	}

	return u.commit(ctx, o, to)
}

// 条件付き一発更新で確定し、成功したら顧客へ通知する。
func (u *ShopOrderUsecase) commit(ctx context.Context, o model.Order, to model.OrderStatus) error {
	ok, err := u.orderRepo.UpdateStatusIf(ctx, o.ID, o.Status, to)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		// 競合した。今の値を読み直して返す
		cur, err := u.orderRepo.FindByID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusConflict, "order status changed")
		}
		return NewOrderStateError(cur.Status)
	}

	u.notifier.StatusChangedByShop(ctx, o.CustomerID, o.ID, to)
	return nil
}

func (u *ShopOrderUsecase) resolveShop(ctx context.Context, userID int64) (model.Shop, error) {
	if userID <= 0 {
		return model.Shop{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	shop, err := u.shopRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Shop{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return model.Shop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return shop, nil
}

// 注文取得＋自店舗かの確認。他店の注文は403。
func (u *ShopOrderUsecase) ownedOrder(ctx context.Context, shop model.Shop, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.ShopID != shop.ID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return o, nil
}
