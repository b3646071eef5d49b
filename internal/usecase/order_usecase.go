package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"

	"github.com/google/uuid"
)

// OrderUsecase は注文の確定と、顧客側のステータス遷移（キャンセル・受け取り確認）。
type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	shopRepo      repo.ShopRepository
	notifier      OrderEventNotifier
	clock         Clock
	cancelWindow  time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	shopRepo repo.ShopRepository,
	notifier OrderEventNotifier,
	clock Clock,
	cancelWindow time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		shopRepo:      shopRepo,
		notifier:      notifier,
		clock:         clock,
		cancelWindow:  cancelWindow,
	}
}

type PlaceOrderInput struct {
	DeliveryAddress  string
	PaymentMethod    string
	PaymentReference string
	Fulfillment      string
	Notes            string
	// 空なら全明細を注文に回す
	SelectedItemIDs []int64
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderOutput struct {
	ID               int64             `json:"id"`
	Code             string            `json:"code"`
	CustomerID       int64             `json:"customer_id"`
	ShopID           int64             `json:"shop_id"`
	ShopName         string            `json:"shop_name,omitempty"`
	Status           string            `json:"status"`
	Fulfillment      string            `json:"fulfillment_option"`
	DeliveryAddress  string            `json:"delivery_address"`
	DeliveryFee      int64             `json:"delivery_fee"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	PaymentStatus    string            `json:"payment_status"`
	Subtotal         int64             `json:"subtotal"`
	TotalAmount      int64             `json:"total_amount"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []OrderItemOutput `json:"items"`
}

// PlaceOrder はカート（または選択明細）から不変の注文を作る。
// 検証→注文作成→カート消費までを1トランザクションでやる。
// クォートはあくまで参考で、ここでの再検証が正。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fulfillment := model.FulfillmentOption(in.Fulfillment)
	if fulfillment != model.FulfillmentDelivery && fulfillment != model.FulfillmentPickup {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid fulfillment_option")
	}

	payment := model.PaymentMethod(in.PaymentMethod)
	if payment != model.PaymentMethodCash && payment != model.PaymentMethodGcash {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	address := strings.TrimSpace(in.DeliveryAddress)
	if fulfillment == model.FulfillmentDelivery && address == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery_address required")
	}

	reference := strings.TrimSpace(in.PaymentReference)
	if payment == model.PaymentMethodGcash && reference == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment_reference required")
	}

	// 受け取りは固定の住所を入れる（入力があっても無視）
	if fulfillment == model.FulfillmentPickup {
		address = model.PickupAddress
	}
	// 参照番号はGCashのときだけ保存する
	if payment != model.PaymentMethodGcash {
		reference = ""
	}

	var out OrderOutput
	var shopUserID int64
	var createdOrderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByCustomerID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusConflict, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 選択→単一店舗→在庫の再検証（確定時が正）
		ws, err := validateWorkingSet(ctx, r.Products(), items, in.SelectedItemIDs)
		if err != nil {
			return err
		}

		shop, err := r.Shops().FindByID(ctx, ws.shopID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "shop not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		shopUserID = shop.UserID

		var deliveryFee int64 = 0
		if fulfillment == model.FulfillmentDelivery {
			deliveryFee = shop.DeliveryFee
		}

		// 価格はこの瞬間のカタログ価格でスナップショット。
		// 以降、商品価格が変わっても注文は動かない。
		now := u.clock.Now()
		orderItems := make([]model.OrderItem, 0, len(ws.items))
		var subtotal int64 = 0

		for _, it := range ws.items {
			p := ws.products[it.ProductID]
			itemSubtotal := p.Price * it.Quantity

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            it.Quantity,
				Subtotal:            itemSubtotal,
				CreatedAt:           now,
			})

			subtotal += itemSubtotal
		}

		paymentStatus := model.PaymentStatusPending
		if payment == model.PaymentMethodGcash {
			// 参照番号を預かるだけ（検証はしない）なので completed 扱い
			paymentStatus = model.PaymentStatusCompleted
		}

		order := model.Order{
			Code:             uuid.NewString(),
			CustomerID:       customerID,
			ShopID:           shop.ID,
			Status:           model.OrderStatusPending,
			Fulfillment:      fulfillment,
			DeliveryAddress:  address,
			DeliveryFee:      deliveryFee,
			PaymentMethod:    payment,
			PaymentReference: reference,
			PaymentStatus:    paymentStatus,
			Subtotal:         subtotal,
			TotalAmount:      subtotal + deliveryFee,
			Notes:            strings.TrimSpace(in.Notes),
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		createdOrderID = orderID

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カート消費。全明細ならカートごと削除、部分なら消費分だけ消して
		// 残りの合計を引き直す（残明細の小計には触らない）。
		if ws.coversWholeCart {
			if err := r.Carts().Delete(ctx, cart.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			consumed := make([]int64, 0, len(ws.items))
			for _, it := range ws.items {
				consumed = append(consumed, it.ID)
			}
			if err := r.CartItems().DeleteByIDs(ctx, cart.ID, consumed); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Carts().RecalculateTotal(ctx, cart.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		out.ShopName = shop.Name
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	// 通知はトランザクションの外。失敗しても注文は成立したまま。
	u.notifier.OrderPlaced(ctx, shopUserID, createdOrderID, out.Code)

	return out, nil
}

// ListMyOrders は自分の注文一覧。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, _, err := u.orderRepo.ListByCustomerID(ctx, customerID, 1, 50)
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

// GetMyOrderDetail は自分の注文詳細。他人の注文は「存在しない扱い」。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, customerID int64, orderID int64) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != customerID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toOrderOutput(o, items)
	if shop, err := u.shopRepo.FindByID(ctx, o.ShopID); err == nil {
		out.ShopName = shop.Name
	}
	return out, nil
}

// CancelOrder は顧客キャンセル。pending かつ作成からキャンセル猶予内だけ。
func (u *OrderUsecase) CancelOrder(ctx context.Context, customerID int64, orderID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != customerID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if o.Status != model.OrderStatusPending {
		return NewOrderStateError(o.Status)
	}
	if u.clock.Now().Sub(o.CreatedAt) > u.cancelWindow {
		return NewHTTPError(http.StatusConflict, "cancellation window has passed")
	}

	// 条件付き一発更新。店舗のacceptと競合したら0行になる
	ok, err := u.orderRepo.UpdateStatusIf(ctx, orderID, model.OrderStatusPending, model.OrderStatusCancelled)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return u.currentStateError(ctx, orderID)
	}

	u.notifyShop(ctx, o.ShopID, orderID, model.OrderStatusCancelled)
	return nil
}

// ClaimOrder は受け取り確認。ready_for_pickup か delivered から claimed へ。
func (u *OrderUsecase) ClaimOrder(ctx context.Context, customerID int64, orderID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != customerID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if o.Status != model.OrderStatusReadyForPickup && o.Status != model.OrderStatusDelivered {
		return NewOrderStateError(o.Status)
	}

	ok, err := u.orderRepo.UpdateStatusIf(ctx, orderID, o.Status, model.OrderStatusClaimed)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return u.currentStateError(ctx, orderID)
	}

	u.notifyShop(ctx, o.ShopID, orderID, model.OrderStatusClaimed)
	return nil
}

// 競合で遷移できなかったとき、今のステータスを読み直してエラーにする。
func (u *OrderUsecase) currentStateError(ctx context.Context, orderID int64) error {
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusConflict, "order status changed")
	}
	return NewOrderStateError(o.Status)
}

func (u *OrderUsecase) notifyShop(ctx context.Context, shopID int64, orderID int64, status model.OrderStatus) {
	shop, err := u.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return
	}
	u.notifier.StatusChangedByCustomer(ctx, shop.UserID, orderID, status)
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:               o.ID,
		Code:             o.Code,
		CustomerID:       o.CustomerID,
		ShopID:           o.ShopID,
		Status:           string(o.Status),
		Fulfillment:      string(o.Fulfillment),
		DeliveryAddress:  o.DeliveryAddress,
		DeliveryFee:      o.DeliveryFee,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentReference: o.PaymentReference,
		PaymentStatus:    string(o.PaymentStatus),
		Subtotal:         o.Subtotal,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
		Items:            outItems,
	}
}
