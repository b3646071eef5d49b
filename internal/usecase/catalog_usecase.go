package usecase

import (
	repo "campuseats/internal/repository"
	"context"
	"net/http"

	"campuseats/internal/domain/model"
)

// CatalogUsecase は公開側の店舗メニュー閲覧。
type CatalogUsecase struct {
	shopRepo    repo.ShopRepository
	productRepo repo.ProductRepository
}

func NewCatalogUsecase(shopRepo repo.ShopRepository, productRepo repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{shopRepo: shopRepo, productRepo: productRepo}
}

type ShopMenuOutput struct {
	Shop     model.Shop      `json:"shop"`
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

// GetShopMenu は店舗情報とメニュー一覧。未認証の店舗は一覧に出さない。
func (u *CatalogUsecase) GetShopMenu(ctx context.Context, shopID int64, q repo.ProductListQuery) (ShopMenuOutput, error) {
	if shopID <= 0 {
		return ShopMenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	shop, err := u.shopRepo.FindByID(ctx, shopID)
	if err == repo.ErrNotFound {
		return ShopMenuOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ShopMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !shop.IsVerified {
		return ShopMenuOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	products, total, err := u.productRepo.ListByShopID(ctx, shopID, q)
	if err != nil {
		return ShopMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ShopMenuOutput{Shop: shop, Products: products, Total: total}, nil
}

// GetProduct は商品詳細。
func (u *CatalogUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
