package repository

import (
	"campuseats/internal/domain/model"
	"context"
)

type ShopRepository interface {
	FindByID(ctx context.Context, shopID int64) (model.Shop, error)
	// 店舗アカウント（users.role=shop）から自分の店舗を引く
	FindByUserID(ctx context.Context, userID int64) (model.Shop, error)
	Update(ctx context.Context, s model.Shop) error
}
