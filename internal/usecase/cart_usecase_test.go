package usecase

import (
	"context"
	"net/http"
	"testing"

	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecaseForTest() (*CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *ShopRepoMock) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	shopRepo := new(ShopRepoMock)
	u := NewCartUsecase(cartRepo, cartItemRepo, productRepo, shopRepo)
	return u, cartRepo, cartItemRepo, productRepo, shopRepo
}

func assertHTTPError(t *testing.T, err error, status int) *HTTPError {
	t.Helper()
	he, ok := AsHTTPError(err)
	if !assert.True(t, ok, "expected HTTPError, got %v", err) {
		t.FailNow()
	}
	assert.Equal(t, status, he.Status)
	return he
}

func TestGetCart_NoCartReturnsEmpty(t *testing.T) {
	u, cartRepo, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartRepo.On("FindByCustomerID", ctx, int64(10)).Return(model.Cart{}, repo.ErrNotFound)

	resp, err := u.GetCart(ctx, 10)

	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items) // JSONで null ではなく [] になること
	assert.Equal(t, int64(0), resp.TotalAmount)
}

func TestGetCart_TotalIsSumOfLineSubtotals(t *testing.T) {
	u, cartRepo, cartItemRepo, productRepo, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartRepo.On("FindByCustomerID", ctx, int64(10)).Return(model.Cart{ID: 1, CustomerID: 10}, nil)
	cartItemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 1, CartID: 1, ShopID: 1, ProductID: 100, Quantity: 2, LineSubtotal: 100},
		{ID: 2, CartID: 1, ShopID: 2, ProductID: 200, Quantity: 1, LineSubtotal: 100},
	}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{ID: 100, Name: "Burger"}, nil)
	productRepo.On("FindByID", ctx, int64(200)).Return(model.Product{ID: 200, Name: "Shake"}, nil)

	resp, err := u.GetCart(ctx, 10)

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(200), resp.TotalAmount)
	assert.Equal(t, "Burger", resp.Items[0].Name)
}

func TestAddToCart_Success(t *testing.T) {
	u, cartRepo, cartItemRepo, productRepo, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, IsVerified: true}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 1, Name: "Burger", Price: 50, Status: model.ProductStatusAvailable,
	}, nil)
	cartRepo.On("GetOrCreateByCustomerID", ctx, int64(10)).Return(model.Cart{ID: 7, CustomerID: 10}, nil)
	// 単価は今のカタログ価格が渡ること
	cartItemRepo.On("UpsertByCartAndProduct", ctx, int64(7), int64(1), int64(100), int64(2), int64(50)).Return(nil)
	cartRepo.On("RecalculateTotal", ctx, int64(7)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 1, CartID: 7, ShopID: 1, ProductID: 100, Quantity: 2, LineSubtotal: 100},
	}, nil)

	resp, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 100, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, int64(100), resp.TotalAmount)
	cartItemRepo.AssertExpectations(t)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	u, cartRepo, _, _, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 100, Quantity: 0})

	assertHTTPError(t, err, http.StatusBadRequest)
	shopRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "GetOrCreateByCustomerID", mock.Anything, mock.Anything)
}

func TestAddToCart_ShopNotFound(t *testing.T) {
	u, _, _, _, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(99)).Return(model.Shop{}, repo.ErrNotFound)

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 99, ProductID: 100, Quantity: 1})

	assertHTTPError(t, err, http.StatusNotFound)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	u, _, _, productRepo, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, IsVerified: true}, nil)
	productRepo.On("FindByID", ctx, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 999, Quantity: 1})

	assertHTTPError(t, err, http.StatusNotFound)
}

func TestAddToCart_ProductBelongsToOtherShop(t *testing.T) {
	u, cartRepo, _, productRepo, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, IsVerified: true}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 2, Status: model.ProductStatusAvailable,
	}, nil)

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 100, Quantity: 1})

	he := assertHTTPError(t, err, http.StatusConflict)
	assert.Equal(t, "product does not belong to shop", he.Message)
	cartRepo.AssertNotCalled(t, "GetOrCreateByCustomerID", mock.Anything, mock.Anything)
}

func TestAddToCart_ShopNotVerified(t *testing.T) {
	u, _, _, productRepo, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, IsVerified: false}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 1, Status: model.ProductStatusAvailable,
	}, nil)

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 100, Quantity: 1})

	he := assertHTTPError(t, err, http.StatusConflict)
	assert.Equal(t, "shop is not verified", he.Message)
}

func TestAddToCart_ProductUnavailable(t *testing.T) {
	u, _, _, productRepo, shopRepo := newCartUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByID", ctx, int64(1)).Return(model.Shop{ID: 1, IsVerified: true}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 1, Status: model.ProductStatusUnavailable,
	}, nil)

	_, err := u.AddToCart(ctx, 10, AddCartInput{ShopID: 1, ProductID: 100, Quantity: 1})

	he := assertHTTPError(t, err, http.StatusConflict)
	assert.Equal(t, "product not available", he.Message)
}

func TestUpdateCartItem_RepricesAtCurrentPrice(t *testing.T) {
	u, cartRepo, cartItemRepo, productRepo, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartItemRepo.On("IsOwnedByCustomer", ctx, int64(5), int64(10)).Return(true, nil)
	cartItemRepo.On("FindByID", ctx, int64(5)).Return(model.CartItem{
		ID: 5, CartID: 7, ShopID: 1, ProductID: 100, Quantity: 2, LineSubtotal: 100,
	}, nil)
	// 追加時 50 → 現在 60 に値上がりしている
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 1, Name: "Burger", Price: 60, Status: model.ProductStatusAvailable,
	}, nil)
	cartItemRepo.On("UpdateQuantity", ctx, int64(5), int64(3), int64(180)).Return(nil)
	cartRepo.On("RecalculateTotal", ctx, int64(7)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 5, CartID: 7, ShopID: 1, ProductID: 100, Quantity: 3, LineSubtotal: 180},
	}, nil)

	resp, err := u.UpdateCartItem(ctx, 10, 5, UpdateCartItemInput{Quantity: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(180), resp.TotalAmount)
	cartItemRepo.AssertExpectations(t)
}

func TestUpdateCartItem_NotOwned(t *testing.T) {
	u, _, cartItemRepo, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartItemRepo.On("IsOwnedByCustomer", ctx, int64(5), int64(10)).Return(false, nil)

	_, err := u.UpdateCartItem(ctx, 10, 5, UpdateCartItemInput{Quantity: 2})

	// 他人の明細は存在しない扱い
	assertHTTPError(t, err, http.StatusNotFound)
	cartItemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCartItem_ProductGone(t *testing.T) {
	u, _, cartItemRepo, productRepo, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartItemRepo.On("IsOwnedByCustomer", ctx, int64(5), int64(10)).Return(true, nil)
	cartItemRepo.On("FindByID", ctx, int64(5)).Return(model.CartItem{
		ID: 5, CartID: 7, ProductID: 100, Quantity: 2,
	}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{}, repo.ErrNotFound)

	_, err := u.UpdateCartItem(ctx, 10, 5, UpdateCartItemInput{Quantity: 3})

	he := assertHTTPError(t, err, http.StatusConflict)
	assert.Equal(t, "product no longer available", he.Message)
}

func TestUpdateCartItem_InvalidQuantity(t *testing.T) {
	u, _, cartItemRepo, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	_, err := u.UpdateCartItem(ctx, 10, 5, UpdateCartItemInput{Quantity: 0})

	assertHTTPError(t, err, http.StatusBadRequest)
	cartItemRepo.AssertNotCalled(t, "IsOwnedByCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCartItem_LastItemDeletesCart(t *testing.T) {
	u, cartRepo, cartItemRepo, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartItemRepo.On("IsOwnedByCustomer", ctx, int64(5), int64(10)).Return(true, nil)
	cartItemRepo.On("FindByID", ctx, int64(5)).Return(model.CartItem{ID: 5, CartID: 7}, nil)
	cartItemRepo.On("DeleteByID", ctx, int64(5)).Return(nil)
	cartItemRepo.On("CountByCartID", ctx, int64(7)).Return(int64(0), nil)
	cartRepo.On("Delete", ctx, int64(7)).Return(nil)

	resp, err := u.DeleteCartItem(ctx, 10, 5)

	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
	cartRepo.AssertCalled(t, "Delete", ctx, int64(7))
	cartRepo.AssertNotCalled(t, "RecalculateTotal", mock.Anything, mock.Anything)
}

func TestDeleteCartItem_RemainingItemsRecalculate(t *testing.T) {
	u, cartRepo, cartItemRepo, productRepo, _ := newCartUsecaseForTest()
	ctx := context.Background()

	cartItemRepo.On("IsOwnedByCustomer", ctx, int64(5), int64(10)).Return(true, nil)
	cartItemRepo.On("FindByID", ctx, int64(5)).Return(model.CartItem{ID: 5, CartID: 7}, nil)
	cartItemRepo.On("DeleteByID", ctx, int64(5)).Return(nil)
	cartItemRepo.On("CountByCartID", ctx, int64(7)).Return(int64(1), nil)
	cartRepo.On("RecalculateTotal", ctx, int64(7)).Return(nil)
	cartItemRepo.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 6, CartID: 7, ProductID: 200, Quantity: 1, LineSubtotal: 80},
	}, nil)
	productRepo.On("FindByID", ctx, int64(200)).Return(model.Product{ID: 200, Name: "Fries"}, nil)

	resp, err := u.DeleteCartItem(ctx, 10, 5)

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, int64(80), resp.TotalAmount)
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
