package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogum/blogum/models"
	"github.com/blogum/blogum/utils"
)

// CategoryController serves the public category browse page.
type CategoryController struct {
	db *gorm.DB
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

// Posts renders the visible posts of one published category. A missing
// or unpublished category is a 404.
func (c *CategoryController) Posts(ctx *gin.Context) {
	var category models.Category
	err := c.db.Where("slug = ? AND is_published = ?", ctx.Param("slug"), true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load category")
		return
	}

	now := time.Now()
	scoped := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(models.Visible(now)).Where("posts.category_id = ?", category.ID)
	}

	var total int64
	if err := c.db.Model(&models.Post{}).Scopes(scoped).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to count posts")
		return
	}

	page, offset := utils.Paginate(total, utils.ParsePage(ctx.Query("page")), utils.PostsPerPage)

	var posts []models.Post
	err = c.db.Scopes(scoped, models.ByNewest).
		Preload("Author").Preload("Category").Preload("Location").
		Offset(offset).Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list posts")
		return
	}
	if err := models.AnnotateCommentCounts(c.db, posts); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to count comments")
		return
	}

	utils.Render(ctx, "blog/category", gin.H{
		"category": category,
		"posts":    posts,
		"page_obj": page,
	})
}
