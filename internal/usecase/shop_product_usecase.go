package usecase

import (
	repo "campuseats/internal/repository"
	"context"
	"net/http"
	"strings"

	"campuseats/internal/domain/model"
)

// ShopProductUsecase は店舗側のメニュー管理と店舗設定。
type ShopProductUsecase struct {
	shopRepo    repo.ShopRepository
	productRepo repo.ProductRepository
}

func NewShopProductUsecase(shopRepo repo.ShopRepository, productRepo repo.ProductRepository) *ShopProductUsecase {
	return &ShopProductUsecase{shopRepo: shopRepo, productRepo: productRepo}
}

type SaveProductInput struct {
	Name        string
	Description string
	Price       int64
	Status      string
}

type UpdateShopSettingsInput struct {
	Name        string
	Description string
	DeliveryFee int64
}

// CreateProduct は自店舗のメニューに商品を追加。
func (u *ShopProductUsecase) CreateProduct(ctx context.Context, userID int64, in SaveProductInput) (model.Product, error) {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}

	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	status := model.ProductStatus(in.Status)
	if in.Status == "" {
		status = model.ProductStatusAvailable
	}

	p := model.Product{
		ShopID:      shop.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Status:      status,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// UpdateProduct は自店舗の商品だけ更新できる。
func (u *ShopProductUsecase) UpdateProduct(ctx context.Context, userID int64, productID int64, in SaveProductInput) (model.Product, error) {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}

	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.ShopID != shop.ID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	if in.Status != "" {
		p.Status = model.ProductStatus(in.Status)
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// DeleteProduct はソフトデリート。過去の注文スナップショットはそのまま残る。
func (u *ShopProductUsecase) DeleteProduct(ctx context.Context, userID int64, productID int64) error {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return err
	}

	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.ShopID != shop.ID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// UpdateSettings は店舗名・説明・配達料の変更。is_verified は運営しか触れない。
func (u *ShopProductUsecase) UpdateSettings(ctx context.Context, userID int64, in UpdateShopSettingsInput) (model.Shop, error) {
	shop, err := u.resolveShop(ctx, userID)
	if err != nil {
		return model.Shop{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.DeliveryFee < 0 {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "invalid delivery_fee")
	}

	shop.Name = name
	shop.Description = strings.TrimSpace(in.Description)
	shop.DeliveryFee = in.DeliveryFee

	if err := u.shopRepo.Update(ctx, shop); err != nil {
		return model.Shop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return shop, nil
}

func (u *ShopProductUsecase) resolveShop(ctx context.Context, userID int64) (model.Shop, error) {
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

func validateProductInput(in SaveProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Status != "" {
		s := model.ProductStatus(in.Status)
		if s != model.ProductStatusAvailable && s != model.ProductStatusUnavailable {
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}
	return nil
}
