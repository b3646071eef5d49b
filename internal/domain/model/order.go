package model

import "time"

// 注文ステータス。文字列はクライアントとの契約なのでそのまま保存する。
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusOnTheWay       OrderStatus = "on_the_way"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusClaimed        OrderStatus = "claimed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type FulfillmentOption string

const (
	FulfillmentDelivery FulfillmentOption = "delivery"
	FulfillmentPickup   FulfillmentOption = "pickup"
)

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodGcash PaymentMethod = "gcash"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// 店頭受け取りのときに delivery_address に入れる固定値。
const PickupAddress = "Pickup"

// 注文。作成後はステータス以外を変更しない。
// 金額・商品名は確定時点のスナップショットで、後から商品が変わっても影響しない。
type Order struct {
	ID               int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string            `gorm:"type:varchar(36);not null;uniqueIndex" json:"code"`
	CustomerID       int64             `gorm:"not null;index" json:"customer_id"`
	ShopID           int64             `gorm:"not null;index" json:"shop_id"`
	Status           OrderStatus       `gorm:"type:varchar(20);not null;index" json:"status"`
	Fulfillment      FulfillmentOption `gorm:"type:varchar(20);not null" json:"fulfillment_option"`
	DeliveryAddress  string            `gorm:"type:varchar(255);not null" json:"delivery_address"`
	DeliveryFee      int64             `gorm:"not null" json:"delivery_fee"`
	PaymentMethod    PaymentMethod     `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentReference string            `gorm:"type:varchar(255)" json:"payment_reference,omitempty"`
	PaymentStatus    PaymentStatus     `gorm:"type:varchar(20);not null" json:"payment_status"`
	Subtotal         int64             `gorm:"not null" json:"subtotal"`
	TotalAmount      int64             `gorm:"not null" json:"total_amount"`
	Notes            string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// cancelled と claimed は終端。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusClaimed
}
