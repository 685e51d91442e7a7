package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminVoucherHandler struct {
	uc *usecase.VoucherUsecase
}

// DI
func NewAdminVoucherHandler(uc *usecase.VoucherUsecase) *AdminVoucherHandler {
	return &AdminVoucherHandler{uc: uc}
}

type AdminVoucherRequest struct {
	Code              string `json:"code"`
	Description       string `json:"description"`
	Image             string `json:"image"`
	DiscountType      string `json:"discount_type"`
	DiscountValue     int64  `json:"discount_value"`
	MinOrder          int64  `json:"min_order"`
	MaxDiscount       int64  `json:"max_discount"`
	StartDate         string `json:"start_date"` // RFC3339
	EndDate           string `json:"end_date"`   // RFC3339
	UsageLimitPerUser int    `json:"usage_limit_per_user"`
	UsageLimitGlobal  int    `json:"usage_limit_global"`
}

func (h *AdminVoucherHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/vouchers", h.create)
	admin.PUT("/vouchers/:id", h.update)
	admin.DELETE("/vouchers/:id", h.delete)
}

func (h *AdminVoucherHandler) bindInput(c echo.Context) (usecase.AdminVoucherInput, bool) {
	var req AdminVoucherRequest
	if err := c.Bind(&req); err != nil {
		return usecase.AdminVoucherInput{}, false
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return usecase.AdminVoucherInput{}, false
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return usecase.AdminVoucherInput{}, false
	}

	return usecase.AdminVoucherInput{
		Code:              req.Code,
		Description:       req.Description,
		Image:             req.Image,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrder:          req.MinOrder,
		MaxDiscount:       req.MaxDiscount,
		StartDate:         start,
		EndDate:           end,
		UsageLimitPerUser: req.UsageLimitPerUser,
		UsageLimitGlobal:  req.UsageLimitGlobal,
	}, true
}

func (h *AdminVoucherHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	in, ok := h.bindInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	v, err := h.uc.AdminCreate(c.Request().Context(), adminID, in)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "voucher created", v)
}

func (h *AdminVoucherHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	voucherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	in, ok := h.bindInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.uc.AdminUpdate(c.Request().Context(), adminID, voucherID, in); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "voucher updated", nil)
}

func (h *AdminVoucherHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	voucherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), adminID, voucherID); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "voucher deleted", nil)
}
