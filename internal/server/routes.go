package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開API
	h.Category.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.PaymentMethod.RegisterRoutes(e)
	h.Reservation.RegisterRoutes(e)

	//認証つきAPI
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Voucher.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)

	//管理API
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminProduct.RegisterRoutes(e, cfg, userRepo)
	h.AdminVoucher.RegisterRoutes(e, cfg, userRepo)
}
