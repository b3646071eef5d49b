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

func newShopProductUsecaseForTest() (*ShopProductUsecase, *ShopRepoMock, *ProductRepoMock) {
	shopRepo := new(ShopRepoMock)
	productRepo := new(ProductRepoMock)
	u := NewShopProductUsecase(shopRepo, productRepo)
	return u, shopRepo, productRepo
}

func TestCreateProduct_Success(t *testing.T) {
	u, shopRepo, productRepo := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1, UserID: 20}, nil)
	productRepo.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.ShopID == 1 && p.Name == "Burger" && p.Price == 50 &&
			p.Status == model.ProductStatusAvailable
	})).Return(model.Product{ID: 100, ShopID: 1, Name: "Burger", Price: 50}, nil)

	created, err := u.CreateProduct(ctx, 20, SaveProductInput{
		Name:  "  Burger  ",
		Price: 50,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   SaveProductInput
	}{
		{"名前なし", SaveProductInput{Name: " ", Price: 50}},
		{"価格ゼロ", SaveProductInput{Name: "Burger", Price: 0}},
		{"価格マイナス", SaveProductInput{Name: "Burger", Price: -10}},
		{"ステータス不正", SaveProductInput{Name: "Burger", Price: 50, Status: "soldout"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, shopRepo, productRepo := newShopProductUsecaseForTest()
			ctx := context.Background()

			shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1}, nil)

			_, err := u.CreateProduct(ctx, 20, tc.in)

			assertHTTPError(t, err, http.StatusBadRequest)
			productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProduct_ForeignProductForbidden(t *testing.T) {
	u, shopRepo, productRepo := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{ID: 100, ShopID: 2}, nil)

	_, err := u.UpdateProduct(ctx, 20, 100, SaveProductInput{Name: "Burger", Price: 50})

	assertHTTPError(t, err, http.StatusForbidden)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProduct_Success(t *testing.T) {
	u, shopRepo, productRepo := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{
		ID: 100, ShopID: 1, Name: "Burger", Price: 50, Status: model.ProductStatusAvailable,
	}, nil)
	productRepo.On("Update", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 100 && p.Price == 60 && p.Status == model.ProductStatusUnavailable
	})).Return(nil)

	updated, err := u.UpdateProduct(ctx, 20, 100, SaveProductInput{
		Name:   "Burger",
		Price:  60,
		Status: "unavailable",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(60), updated.Price)
}

func TestDeleteProduct_SoftDelete(t *testing.T) {
	u, shopRepo, productRepo := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1}, nil)
	productRepo.On("FindByID", ctx, int64(100)).Return(model.Product{ID: 100, ShopID: 1}, nil)
	productRepo.On("SoftDelete", ctx, int64(100)).Return(nil)

	err := u.DeleteProduct(ctx, 20, 100)

	assert.NoError(t, err)
	productRepo.AssertCalled(t, "SoftDelete", ctx, int64(100))
}

func TestUpdateSettings_Success(t *testing.T) {
	u, shopRepo, _ := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{
		ID: 1, UserID: 20, Name: "Old", DeliveryFee: 10, IsVerified: true,
	}, nil)
	shopRepo.On("Update", ctx, mock.MatchedBy(func(s model.Shop) bool {
		// is_verified は変更されない
		return s.ID == 1 && s.Name == "New Name" && s.DeliveryFee == 25 && s.IsVerified
	})).Return(nil)

	out, err := u.UpdateSettings(ctx, 20, UpdateShopSettingsInput{
		Name:        "New Name",
		DeliveryFee: 25,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", out.Name)
}

func TestUpdateSettings_NegativeFee(t *testing.T) {
	u, shopRepo, _ := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{ID: 1}, nil)

	_, err := u.UpdateSettings(ctx, 20, UpdateShopSettingsInput{
		Name:        "Shop",
		DeliveryFee: -1,
	})

	assertHTTPError(t, err, http.StatusBadRequest)
	shopRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestShopProduct_NoShopForUser(t *testing.T) {
	u, shopRepo, _ := newShopProductUsecaseForTest()
	ctx := context.Background()

	shopRepo.On("FindByUserID", ctx, int64(20)).Return(model.Shop{}, repo.ErrNotFound)

	_, err := u.CreateProduct(ctx, 20, SaveProductInput{Name: "Burger", Price: 50})

	assertHTTPError(t, err, http.StatusForbidden)
}
