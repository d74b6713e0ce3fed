package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/utils"
)

// CategoryController serves the board's category listings.
type CategoryController struct {
	svc *forum.Service
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(svc *forum.Service) *CategoryController {
	return &CategoryController{svc: svc}
}

// ListCategories returns all categories with their post and topic counts.
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	utils.Success(ctx, c.svc.ListCategories())
}

// GetCategory returns a single category with its counts.
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	category, err := c.svc.GetCategory(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, category)
}
