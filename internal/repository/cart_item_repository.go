package repository

import (
	"campuseats/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 同一商品は数量加算し、line_subtotal を現在価格で引き直す
	UpsertByCartAndProduct(ctx context.Context, cartID int64, shopID int64, productID int64, addQty int64, unitPrice int64) error
	// 数量変更。line_subtotal も同時に更新する
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64, lineSubtotal int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// 部分チェックアウトで消費した明細だけ削除
	DeleteByIDs(ctx context.Context, cartID int64, ids []int64) error
	IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error)
	CountByCartID(ctx context.Context, cartID int64) (int64, error)
}
