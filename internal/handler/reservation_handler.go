package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 卓と予約の参照API。作成・変更は未対応（501）。
type ReservationHandler struct {
	uc *usecase.ReservationUsecase
}

// DI
func NewReservationHandler(uc *usecase.ReservationUsecase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/tables", h.listTables)
	e.GET("/reservations/date/:date", h.listByDate)
	e.GET("/reservations/phone/:phone", h.listByPhone)

	//予約の作成・変更・取消は未実装
	e.POST("/reservations", notImplemented)
	e.PUT("/reservations/:id", notImplemented)
	e.DELETE("/reservations/:id", notImplemented)
}

func (h *ReservationHandler) listTables(c echo.Context) error {
	items, err := h.uc.ListTables(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", items)
}

func (h *ReservationHandler) listByDate(c echo.Context) error {
	items, err := h.uc.ListByDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", items)
}

func (h *ReservationHandler) listByPhone(c echo.Context) error {
	items, err := h.uc.ListByPhone(c.Request().Context(), c.Param("phone"))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", items)
}
