package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studyshare/internal/app/services"
	"github.com/yigit/studyshare/internal/middleware"
)

// CategoryController handles category related requests
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (c *CategoryController) GetCategories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.categoryService.GetCategories(ctx.Request.Context()))
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "Invalid category ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	category, err := c.categoryService.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}
