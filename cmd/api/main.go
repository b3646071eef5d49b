package main

import (
	"log/slog"
	"os"
	"time"

	"campuseats/internal/config"
	"campuseats/internal/domain/model"
	"campuseats/internal/handler"
	"campuseats/internal/infra/db"
	infraRepo "campuseats/internal/infra/repository"
	"campuseats/internal/server"
	"campuseats/internal/usecase"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .env は無ければ無いでよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// DB接続
	gormDB, err := db.Connect()
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Shop{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Notification{},
	); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	// Repository（GORM実装）生成
	shopRepo := infraRepo.NewShopGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecaseに渡す部品
	clock := &realClock{}
	notifier := usecase.NewEventNotifier(notificationRepo)

	// Usecase生成
	catalogUC := usecase.NewCatalogUsecase(shopRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, shopRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, cartItemRepo, productRepo, shopRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, shopRepo, notifier, clock, cfg.CancelWindow)
	shopOrderUC := usecase.NewShopOrderUsecase(orderRepo, orderItemRepo, shopRepo, notifier)
	shopProductUC := usecase.NewShopProductUsecase(shopRepo, productRepo)

	// Handler生成
	handlers := server.Handlers{
		Catalog:     handler.NewCatalogHandler(catalogUC),
		Cart:        handler.NewCartHandler(cartUC),
		Checkout:    handler.NewCheckoutHandler(checkoutUC),
		Order:       handler.NewOrderHandler(orderUC),
		ShopOrder:   handler.NewShopOrderHandler(shopOrderUC),
		ShopProduct: handler.NewShopProductHandler(shopProductUC),
	}

	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port

	slog.Info("starting api", "addr", addr, "env", cfg.GoEnv)
	if err := server.Start(e, addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
