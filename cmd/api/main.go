package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/logger"
	"marketplace/internal/notification"
	"marketplace/internal/server"
	"marketplace/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	vendorRepo := infraRepo.NewVendorGormRepository(gormDB)

	//通知（fire-and-forget）
	notifier := notification.NewEmailNotifier(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass, log,
	)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, notifier, log)
	vendorOrderUC := usecase.NewVendorOrderUsecase(txManager, log)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo, log)
	inventoryUC := usecase.NewInventoryUsecase(txManager, log)
	vendorApprovalUC := usecase.NewVendorApprovalUsecase(vendorRepo, notifier, log)

	//Handler生成
	e := server.New(cfg, log, server.Handlers{
		Orders:       handler.NewOrderHandler(orderUC),
		VendorOrders: handler.NewVendorOrderHandler(vendorOrderUC),
		Cart:         handler.NewCartHandler(cartUC),
		Inventory:    handler.NewInventoryHandler(inventoryUC),
		AdminVendors: handler.NewAdminVendorHandler(vendorApprovalUC),
	})

	//Server起動
	addr := ":" + cfg.Port

	go func() {
		log.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	//SIGINT/SIGTERMで止める
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
