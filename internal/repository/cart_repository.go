package repository

import (
	"campuseats/internal/domain/model"
	"context"
)

type CartRepository interface {
	// 無ければ作る（最初の追加時にだけ使う）
	GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	// 明細合計から total_amount を再計算して保存
	RecalculateTotal(ctx context.Context, cartID int64) error
	// カート本体と明細をまとめて物理削除
	Delete(ctx context.Context, cartID int64) error
}
