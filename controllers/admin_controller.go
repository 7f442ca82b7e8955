package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogum/blogum/models"
	"github.com/blogum/blogum/utils"
)

// AdminController manages categories and locations. These records have
// no end-user forms; only configured admin accounts may touch them.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

func (a *AdminController) requireAdmin(ctx *gin.Context) bool {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin access required")
		return false
	}
	return true
}

type categoryForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

func (f *categoryForm) validate(db *gorm.DB, excludeID uint) map[string]string {
	errs := map[string]string{}

	f.Title = utils.StripTags(strings.TrimSpace(f.Title))
	if f.Title == "" {
		errs["title"] = "title is required"
	} else if len([]rune(f.Title)) > 256 {
		errs["title"] = "title must be at most 256 characters"
	}

	f.Description = utils.Sanitize(f.Description)
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "description is required"
	}

	f.Slug = strings.TrimSpace(f.Slug)
	if !utils.ValidSlug(f.Slug) {
		errs["slug"] = "slug may only contain letters, digits, hyphen and underscore"
	} else {
		var n int64
		db.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", f.Slug, excludeID).
			Count(&n)
		if n > 0 {
			errs["slug"] = "slug already in use"
		}
	}

	return errs
}

// ListCategories returns all categories, oldest first.
func (a *AdminController) ListCategories(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}
	var categories []models.Category
	if err := a.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to list categories")
		return
	}
	utils.Success(ctx, gin.H{"categories": categories})
}

// CreateCategory adds a category with a unique URL slug.
func (a *AdminController) CreateCategory(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var form categoryForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if errs := form.validate(a.db, 0); len(errs) > 0 {
		utils.Respond(ctx, http.StatusBadRequest, 40041, "validation failed", gin.H{"errors": errs})
		return
	}

	category := models.Category{
		Title:       form.Title,
		Description: form.Description,
		Slug:        form.Slug,
		IsPublished: true,
	}
	if form.IsPublished != nil {
		category.IsPublished = *form.IsPublished
	}
	if err := a.db.Create(&category).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to create category")
		return
	}
	utils.Success(ctx, gin.H{"category": category})
}

// UpdateCategory edits an existing category.
func (a *AdminController) UpdateCategory(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var category models.Category
	if err := a.db.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load category")
		return
	}

	var form categoryForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if errs := form.validate(a.db, category.ID); len(errs) > 0 {
		utils.Respond(ctx, http.StatusBadRequest, 40041, "validation failed", gin.H{"errors": errs})
		return
	}

	category.Title = form.Title
	category.Description = form.Description
	category.Slug = form.Slug
	if form.IsPublished != nil {
		category.IsPublished = *form.IsPublished
	}
	if err := a.db.Save(&category).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to update category")
		return
	}
	utils.Success(ctx, gin.H{"category": category})
}

// DeleteCategory removes a category. Posts filed under it keep
// existing with a cleared category reference (storage-level set-null).
func (a *AdminController) DeleteCategory(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var category models.Category
	if err := a.db.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load category")
		return
	}
	if err := a.db.Delete(&category).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to delete category")
		return
	}
	utils.Success(ctx, gin.H{"message": "category deleted"})
}

type locationForm struct {
	Name        string `json:"name"`
	IsPublished *bool  `json:"is_published"`
}

func (f *locationForm) validate() map[string]string {
	errs := map[string]string{}
	f.Name = utils.StripTags(strings.TrimSpace(f.Name))
	if f.Name == "" {
		errs["name"] = "name is required"
	} else if len([]rune(f.Name)) > 256 {
		errs["name"] = "name must be at most 256 characters"
	}
	return errs
}

// ListLocations returns all locations, oldest first.
func (a *AdminController) ListLocations(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}
	var locations []models.Location
	if err := a.db.Order("created_at ASC").Find(&locations).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to list locations")
		return
	}
	utils.Success(ctx, gin.H{"locations": locations})
}

// CreateLocation adds a location.
func (a *AdminController) CreateLocation(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var form locationForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		utils.Respond(ctx, http.StatusBadRequest, 40043, "validation failed", gin.H{"errors": errs})
		return
	}

	location := models.Location{Name: form.Name, IsPublished: true}
	if form.IsPublished != nil {
		location.IsPublished = *form.IsPublished
	}
	if err := a.db.Create(&location).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to create location")
		return
	}
	utils.Success(ctx, gin.H{"location": location})
}

// UpdateLocation edits an existing location.
func (a *AdminController) UpdateLocation(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var location models.Location
	if err := a.db.First(&location, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40405, "location not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to load location")
		return
	}

	var form locationForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}
	if errs := form.validate(); len(errs) > 0 {
		utils.Respond(ctx, http.StatusBadRequest, 40043, "validation failed", gin.H{"errors": errs})
		return
	}

	location.Name = form.Name
	if form.IsPublished != nil {
		location.IsPublished = *form.IsPublished
	}
	if err := a.db.Save(&location).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50058, "failed to update location")
		return
	}
	utils.Success(ctx, gin.H{"location": location})
}

// DeleteLocation removes a location; posts referencing it keep
// existing with a cleared location (storage-level set-null).
func (a *AdminController) DeleteLocation(ctx *gin.Context) {
	if !a.requireAdmin(ctx) {
		return
	}

	var location models.Location
	if err := a.db.First(&location, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40405, "location not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to load location")
		return
	}
	if err := a.db.Delete(&location).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50059, "failed to delete location")
		return
	}
	utils.Success(ctx, gin.H{"message": "location deleted"})
}
