package usecase

import (
	"context"
	"time"

	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) RecalculateTotal(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartRepoMock) Delete(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, shopID int64, productID int64, addQty int64, unitPrice int64) error {
	args := m.Called(ctx, cartID, shopID, productID, addQty, unitPrice)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64, lineSubtotal int64) error {
	args := m.Called(ctx, cartItemID, qty, lineSubtotal)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByIDs(ctx context.Context, cartID int64, ids []int64) error {
	args := m.Called(ctx, cartID, ids)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *CartItemRepoMock) CountByCartID(ctx context.Context, cartID int64) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListByShopID(ctx context.Context, shopID int64, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, shopID, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ShopRepoMock struct{ mock.Mock }

func (m *ShopRepoMock) FindByID(ctx context.Context, shopID int64) (model.Shop, error) {
	args := m.Called(ctx, shopID)
	s, _ := args.Get(0).(model.Shop)
	return s, args.Error(1)
}

func (m *ShopRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Shop, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(model.Shop)
	return s, args.Error(1)
}

func (m *ShopRepoMock) Update(ctx context.Context, s model.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListByShopID(ctx context.Context, shopID int64, f repo.ShopOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, shopID, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) Create(ctx context.Context, n model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxReposMock はトランザクション内に渡す repos を固定して unit テストを回す
type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	products   repo.ProductRepository
	shops      repo.ShopRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Shops() repo.ShopRepository           { return r.shops }

type TxManagerMock struct {
	Repos repo.TxRepos
	// fnがそもそも呼ばれたか
	Invoked bool
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Invoked = true
	return fn(m.Repos)
}

// =====================
// Notifier / Clock mocks
// =====================

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) OrderPlaced(ctx context.Context, shopUserID int64, orderID int64, orderCode string) {
	m.Called(ctx, shopUserID, orderID, orderCode)
}

func (m *NotifierMock) StatusChangedByShop(ctx context.Context, customerUserID int64, orderID int64, status model.OrderStatus) {
	m.Called(ctx, customerUserID, orderID, status)
}

func (m *NotifierMock) StatusChangedByCustomer(ctx context.Context, shopUserID int64, orderID int64, status model.OrderStatus) {
	m.Called(ctx, shopUserID, orderID, status)
}

// 時刻を固定するClock
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }
