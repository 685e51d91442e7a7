package server

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラの束。mainで組み立てて渡す。
type Handlers struct {
	Auth          *handler.AuthHandler
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Voucher       *handler.VoucherHandler
	Order         *handler.OrderHandler
	PaymentMethod *handler.PaymentMethodHandler
	Reservation   *handler.ReservationHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminProduct  *handler.AdminProductHandler
	AdminVoucher  *handler.AdminVoucherHandler
}

// Start はechoを組み立てて起動する。
func Start(cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	registerRoutes(e, cfg, userRepo, h)

	s := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
		//遅いクライアントで詰まらないように60秒で切る
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return e.StartServer(s)
}
