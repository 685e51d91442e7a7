package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Voucher{},
		&model.UserVoucher{},
		&model.Order{},
		&model.OrderItem{},
		&model.Table{},
		&model.Reservation{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	voucherRepo := infraRepo.NewVoucherGormRepository(gormDB)
	userVoucherRepo := infraRepo.NewUserVoucherGormRepository(gormDB)
	tableRepo := infraRepo.NewTableGormRepository(gormDB)
	reservationRepo := infraRepo.NewReservationGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	voucherUC := usecase.NewVoucherUsecase(voucherRepo, userVoucherRepo, auditRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	reservationUC := usecase.NewReservationUsecase(tableRepo, reservationRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC, cfg),
		Category:      handler.NewCategoryHandler(categoryUC),
		Product:       handler.NewProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Voucher:       handler.NewVoucherHandler(voucherUC),
		Order:         handler.NewOrderHandler(orderUC),
		PaymentMethod: handler.NewPaymentMethodHandler(),
		Reservation:   handler.NewReservationHandler(reservationUC),
		AdminOrder:    handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct:  handler.NewAdminProductHandler(productUC, categoryUC),
		AdminVoucher:  handler.NewAdminVoucherHandler(voucherUC),
	}

	//Server起動
	if err := server.Start(cfg, userRepo, handlers); err != nil {
		log.Fatalf("server: %v", err)
	}
}
