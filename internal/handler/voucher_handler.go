package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type VoucherHandler struct {
	uc *usecase.VoucherUsecase
}

// DI
func NewVoucherHandler(uc *usecase.VoucherUsecase) *VoucherHandler {
	return &VoucherHandler{uc: uc}
}

type AssignVoucherRequest struct {
	VoucherID int64 `json:"voucher_id"`
}

func (h *VoucherHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	//公開一覧・詳細（期間内のみ）
	e.GET("/vouchers", h.list)
	e.GET("/vouchers/:id", h.detail)

	g := e.Group("")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("/vouchers/assign", h.assign)
	g.GET("/user/vouchers", h.listMine)
}

func (h *VoucherHandler) list(c echo.Context) error {
	items, err := h.uc.ListPublic(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", items)
}

func (h *VoucherHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	v, err := h.uc.GetPublicDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", v)
}

func (h *VoucherHandler) assign(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req AssignVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	uv, err := h.uc.Assign(c.Request().Context(), userID, req.VoucherID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "voucher saved", uv)
}

func (h *VoucherHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	items, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "success", items)
}
