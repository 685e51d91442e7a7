package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// 成功レスポンスの共通封筒。
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{Message: message, Data: data})
}

// usecaseのエラーをHTTPに変換する。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//auth系のsentinelエラー
	switch err {
	case usecase.ErrValidation, validator.ErrInvalidInput, validator.ErrInvalidRefresh:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid input"})
	case validator.ErrEmailAlreadyUsed:
		return c.JSON(http.StatusConflict, ErrorResponse{Message: "email already used"})
	case usecase.ErrUnauthorized, usecase.ErrSecurityIncident:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	case usecase.ErrForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: "forbidden"})
	case usecase.ErrConflict:
		return c.JSON(http.StatusConflict, ErrorResponse{Message: "conflict"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

// 未実装エンドポイントの定型レスポンス。
func notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, ErrorResponse{Message: "not implemented"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
