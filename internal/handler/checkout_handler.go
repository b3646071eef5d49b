package handler

import (
	"net/http"

	"campuseats/internal/config"
	"campuseats/internal/middleware"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトの見積もりAPI
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	SelectedItemIDs []int64 `json:"selected_item_ids"`
	Fulfillment     string  `json:"fulfillment_option"`
}

// /checkout を登録
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.CustomerRoleGuard())

	g.POST("", h.prepare)
}

func (h *CheckoutHandler) prepare(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PrepareCheckout(c.Request().Context(), userID, usecase.CheckoutInput{
		SelectedItemIDs: req.SelectedItemIDs,
		Fulfillment:     req.Fulfillment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
