package handler

import (
	"net/http"
	"strconv"

	"campuseats/internal/config"
	"campuseats/internal/middleware"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 店舗側のメニュー管理API
type ShopProductHandler struct {
	uc *usecase.ShopProductUsecase
}

func NewShopProductHandler(uc *usecase.ShopProductUsecase) *ShopProductHandler {
	return &ShopProductHandler{uc: uc}
}

type SaveProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
}

type UpdateShopSettingsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DeliveryFee int64  `json:"delivery_fee"`
}

func (h *ShopProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shop")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ShopRoleGuard())

	g.POST("/products", h.createProduct)
	g.PATCH("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.PATCH("/settings", h.updateSettings)
}

func (h *ShopProductHandler) createProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), userID, usecase.SaveProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ShopProductHandler) updateProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), userID, productID, usecase.SaveProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ShopProductHandler) deleteProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ShopProductHandler) updateSettings(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateShopSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateSettings(c.Request().Context(), userID, usecase.UpdateShopSettingsInput{
		Name:        req.Name,
		Description: req.Description,
		DeliveryFee: req.DeliveryFee,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
