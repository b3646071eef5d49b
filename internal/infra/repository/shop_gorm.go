package repository

import (
	"campuseats/internal/domain/model"
	repo "campuseats/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ShopGormRepository struct {
	db *gorm.DB
}

// DI
func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

func (r *ShopGormRepository) FindByID(ctx context.Context, shopID int64) (model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("id = ?", shopID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shop{}, err
	}
	return s, nil
}

func (r *ShopGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shop{}, err
	}
	return s, nil
}

func (r *ShopGormRepository) Update(ctx context.Context, s model.Shop) error {
	res := r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":         s.Name,
			"description":  s.Description,
			"delivery_fee": s.DeliveryFee,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
