package usecase

import (
	repo "campuseats/internal/repository"
	"context"
	"net/http"

	"campuseats/internal/domain/model"
)

// CartUsecase は /cart の業務ロジックです。
// カートには複数店舗の明細が同居できる。単一店舗への絞り込みはチェックアウト側。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	shopRepo     repo.ShopRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	shopRepo repo.ShopRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
	}
}

type CartItemResponse struct {
	ID           int64  `json:"id"`
	ShopID       int64  `json:"shop_id"`
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	LineSubtotal int64  `json:"line_subtotal"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalAmount int64              `json:"total_amount"`
}

type AddCartInput struct {
	ShopID    int64
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得。無ければ空カートを返す（エラーにしない）。
func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return CartResponse{Items: []CartItemResponse{}}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart はカートに追加（同一商品は数量加算、小計は現在価格で引き直す）。
// カートは最初の追加で作る。
func (u *CartUsecase) AddToCart(ctx context.Context, customerID int64, in AddCartInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 店舗チェック（存在＋認証済み）
	shop, err := u.shopRepo.FindByID(ctx, in.ShopID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "shop not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（存在＋店舗一致＋available）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.ShopID != shop.ID {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "product does not belong to shop")
	}
	if !shop.IsVerified {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "shop is not verified")
	}
	if p.Status != model.ProductStatusAvailable {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "product not available")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）。単価は今の価格を渡す
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, shop.ID, p.ID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// total_amount は毎回ゼロから引き直す
	if err := u.cartRepo.RecalculateTotal(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（所有チェック付き）。0以下で暗黙削除はしない。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, customerID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, cartItemID, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 小計は現在価格で引き直す（触った明細だけ）
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "product no longer available")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity, in.Quantity*p.Price); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.RecalculateTotal(ctx, item.CartID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, item.CartID)
}

// 明細削除。空になったらカート自体を消す。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, customerID int64, cartItemID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, cartItemID, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	remaining, err := u.cartItemRepo.CountByCartID(ctx, item.CartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 空カートは行ごと削除
	if remaining == 0 {
		if err := u.cartRepo.Delete(ctx, item.CartID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return CartResponse{Items: []CartItemResponse{}}, nil
	}

	if err := u.cartRepo.RecalculateTotal(ctx, item.CartID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, item.CartID)
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		name := ""
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			name = p.Name
		}

		respItems = append(respItems, CartItemResponse{
			ID:           it.ID,
			ShopID:       it.ShopID,
			ProductID:    it.ProductID,
			Name:         name,
			Quantity:     it.Quantity,
			LineSubtotal: it.LineSubtotal,
		})

		total += it.LineSubtotal
	}

	return CartResponse{Items: respItems, TotalAmount: total}, nil
}
