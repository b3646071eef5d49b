package usecase

import (
	repo "campuseats/internal/repository"
	"context"
	"net/http"

	"campuseats/internal/domain/model"
)

// CheckoutUsecase は確定前の見積もり（チェックアウトクォート）を作る。
// ここでは何も書き換えない。同じ検証を注文確定側がもう一度やる。
type CheckoutUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	shopRepo     repo.ShopRepository
}

func NewCheckoutUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	shopRepo repo.ShopRepository,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
	}
}

type CheckoutInput struct {
	// 空なら全明細が対象
	SelectedItemIDs []int64
	Fulfillment     string
}

type CheckoutQuoteItem struct {
	CartItemID   int64  `json:"cart_item_id"`
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	LineSubtotal int64  `json:"line_subtotal"`
}

type CheckoutQuote struct {
	ShopID      int64               `json:"shop_id"`
	ShopName    string              `json:"shop_name"`
	Items       []CheckoutQuoteItem `json:"items"`
	Subtotal    int64               `json:"subtotal"`
	DeliveryFee int64               `json:"delivery_fee"`
	TotalAmount int64               `json:"total_amount"`
}

// PrepareCheckout は選択明細を検証して価格内訳を返す（純リード）。
func (u *CheckoutUsecase) PrepareCheckout(ctx context.Context, customerID int64, in CheckoutInput) (CheckoutQuote, error) {
	if customerID <= 0 {
		return CheckoutQuote{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fulfillment := model.FulfillmentOption(in.Fulfillment)
	if fulfillment != model.FulfillmentDelivery && fulfillment != model.FulfillmentPickup {
		return CheckoutQuote{}, NewHTTPError(http.StatusBadRequest, "invalid fulfillment_option")
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return CheckoutQuote{}, NewHTTPError(http.StatusConflict, "cart is empty")
	}
	if err != nil {
		return CheckoutQuote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CheckoutQuote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ws, err := validateWorkingSet(ctx, u.productRepo, items, in.SelectedItemIDs)
	if err != nil {
		return CheckoutQuote{}, err
	}

	shop, err := u.shopRepo.FindByID(ctx, ws.shopID)
	if err == repo.ErrNotFound {
		return CheckoutQuote{}, NewHTTPError(http.StatusNotFound, "shop not found")
	}
	if err != nil {
		return CheckoutQuote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var deliveryFee int64 = 0
	if fulfillment == model.FulfillmentDelivery {
		deliveryFee = shop.DeliveryFee
	}

	quoteItems := make([]CheckoutQuoteItem, 0, len(ws.items))
	for _, it := range ws.items {
		quoteItems = append(quoteItems, CheckoutQuoteItem{
			CartItemID:   it.ID,
			ProductID:    it.ProductID,
			Name:         ws.products[it.ProductID].Name,
			Quantity:     it.Quantity,
			LineSubtotal: it.LineSubtotal,
		})
	}

	return CheckoutQuote{
		ShopID:      shop.ID,
		ShopName:    shop.Name,
		Items:       quoteItems,
		Subtotal:    ws.subtotal,
		DeliveryFee: deliveryFee,
		TotalAmount: ws.subtotal + deliveryFee,
	}, nil
}

// チェックアウト対象の明細集合。
type workingSet struct {
	shopID   int64
	items    []model.CartItem
	products map[int64]model.Product
	subtotal int64
	// 全明細を消費するか（カート自体を消すかの判定に使う）
	coversWholeCart bool
}

// validateWorkingSet は選択→単一店舗→在庫再検証までをまとめてやる。
// カート追加から時間が経って商品が消えている/止まっていることがあるので、
// 商品は必ずここで引き直す。確定時は同じ検証をトランザクション内で再実行する。
func validateWorkingSet(ctx context.Context, products repo.ProductRepository, all []model.CartItem, selectedIDs []int64) (workingSet, error) {
	if len(all) == 0 {
		return workingSet{}, NewHTTPError(http.StatusConflict, "cart is empty")
	}

	selected := all
	if len(selectedIDs) > 0 {
		idSet := make(map[int64]struct{}, len(selectedIDs))
		for _, id := range selectedIDs {
			idSet[id] = struct{}{}
		}

		selected = make([]model.CartItem, 0, len(selectedIDs))
		for _, it := range all {
			if _, ok := idSet[it.ID]; ok {
				selected = append(selected, it)
			}
		}
	}

	if len(selected) == 0 {
		return workingSet{}, NewHTTPError(http.StatusConflict, "no items selected")
	}

	// 単一店舗チェック
	shopID := selected[0].ShopID
	for _, it := range selected {
		if it.ShopID != shopID {
			return workingSet{}, NewHTTPError(http.StatusBadRequest, "multi-shop checkout not supported")
		}
	}

	// 在庫再検証（missing か available 以外なら失敗）
	prods := make(map[int64]model.Product, len(selected))
	var subtotal int64 = 0
	for _, it := range selected {
		p, err := products.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			return workingSet{}, NewHTTPError(http.StatusConflict, "product no longer available")
		}
		if err != nil {
			return workingSet{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if p.Status != model.ProductStatusAvailable {
			return workingSet{}, NewHTTPError(http.StatusConflict, "product no longer available")
		}

		prods[p.ID] = p
		subtotal += it.LineSubtotal
	}

	return workingSet{
		shopID:          shopID,
		items:           selected,
		products:        prods,
		subtotal:        subtotal,
		coversWholeCart: len(selected) == len(all),
	}, nil
}
