package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"campuseats/internal/config"
	"campuseats/internal/middleware"
	"campuseats/internal/repository"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 店舗側の注文API
type ShopOrderHandler struct {
	uc *usecase.ShopOrderUsecase
}

func NewShopOrderHandler(uc *usecase.ShopOrderUsecase) *ShopOrderHandler {
	return &ShopOrderHandler{uc: uc}
}

type ShopUpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *ShopOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shop/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ShopRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/accept", h.accept)
	g.POST("/:id/prepare", h.prepare)
	g.POST("/:id/ready", h.ready)
	g.POST("/:id/cancel", h.cancel)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *ShopOrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f := repository.ShopOrderListFilter{
		Page:   1,
		Limit:  50,
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = &t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = &t
		}
	}

	outs, err := h.uc.List(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, outs)
}

func (h *ShopOrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Detail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ShopOrderHandler) accept(c echo.Context) error {
	return h.simpleTransition(c, h.uc.Accept, "accepted")
}

func (h *ShopOrderHandler) prepare(c echo.Context) error {
	return h.simpleTransition(c, h.uc.StartPreparing, "preparing")
}

func (h *ShopOrderHandler) ready(c echo.Context) error {
	return h.simpleTransition(c, h.uc.MarkReady, "ready_for_pickup")
}

func (h *ShopOrderHandler) cancel(c echo.Context) error {
	return h.simpleTransition(c, h.uc.Cancel, "cancelled")
}

func (h *ShopOrderHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ShopUpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), userID, orderID, usecase.ShopUpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

func (h *ShopOrderHandler) simpleTransition(c echo.Context, fn func(ctx context.Context, userID int64, orderID int64) error, newStatus string) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := fn(c.Request().Context(), userID, orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": newStatus})
}
