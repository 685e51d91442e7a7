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

// メニュー・カテゴリの管理API
type AdminProductHandler struct {
	productUC  *usecase.ProductUsecase
	categoryUC *usecase.CategoryUsecase
}

// DI
func NewAdminProductHandler(productUC *usecase.ProductUsecase, categoryUC *usecase.CategoryUsecase) *AdminProductHandler {
	return &AdminProductHandler{
		productUC:  productUC,
		categoryUC: categoryUC,
	}
}

type AdminProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Thumbnail   string `json:"thumbnail"`
	CategoryID  int64  `json:"category_id"`
	Status      bool   `json:"status"`
}

type AdminCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)

	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	id, err := h.productUC.AdminCreateProduct(c.Request().Context(), adminID, usecase.AdminProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "product created", map[string]int64{"id": id})
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.productUC.AdminUpdateProduct(c.Request().Context(), adminID, productID, usecase.AdminProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	}); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "product updated", nil)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.productUC.AdminDeleteProduct(c.Request().Context(), adminID, productID); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "product deleted", nil)
}

func (h *AdminProductHandler) createCategory(c echo.Context) error {
	var req AdminCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	cat, err := h.categoryUC.AdminCreate(c.Request().Context(), usecase.AdminCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "category created", cat)
}

func (h *AdminProductHandler) updateCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req AdminCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.categoryUC.AdminUpdate(c.Request().Context(), categoryID, usecase.AdminCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "category updated", nil)
}

func (h *AdminProductHandler) deleteCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.categoryUC.AdminDelete(c.Request().Context(), categoryID); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "category deleted", nil)
}
