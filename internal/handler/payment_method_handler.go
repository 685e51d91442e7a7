package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentMethodHandler struct{}

func NewPaymentMethodHandler() *PaymentMethodHandler {
	return &PaymentMethodHandler{}
}

func (h *PaymentMethodHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/payment-methods", h.list)
}

func (h *PaymentMethodHandler) list(c echo.Context) error {
	return respond(c, http.StatusOK, "success", usecase.ListPaymentMethods())
}
