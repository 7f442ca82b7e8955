package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogum/blogum/models"
	"github.com/blogum/blogum/utils"
)

// PostController serves the blog listing pages and post CRUD.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// postForm carries the user-editable post fields. The author is never
// taken from the form; it is always the requesting user.
type postForm struct {
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     *time.Time `json:"pub_date"`
	CategoryID  *uint      `json:"category_id"`
	LocationID  *uint      `json:"location_id"`
	Image       string     `json:"image"`
	IsPublished *bool      `json:"is_published"`
}

// validate cleans the form in place and returns per-field errors,
// empty when the form is acceptable.
func (f *postForm) validate(db *gorm.DB) map[string]string {
	errs := map[string]string{}

	f.Title = utils.StripTags(strings.TrimSpace(f.Title))
	if f.Title == "" {
		errs["title"] = "title is required"
	} else if len([]rune(f.Title)) > 256 {
		errs["title"] = "title must be at most 256 characters"
	}

	f.Text = utils.Sanitize(f.Text)
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "text is required"
	}

	if f.CategoryID == nil {
		errs["category_id"] = "category is required"
	} else {
		var n int64
		db.Model(&models.Category{}).Where("id = ?", *f.CategoryID).Count(&n)
		if n == 0 {
			errs["category_id"] = "category does not exist"
		}
	}

	if f.LocationID != nil {
		var n int64
		db.Model(&models.Location{}).Where("id = ?", *f.LocationID).Count(&n)
		if n == 0 {
			errs["location_id"] = "location does not exist"
		}
	}

	return errs
}

func (f *postForm) apply(post *models.Post) {
	post.Title = f.Title
	post.Text = f.Text
	post.CategoryID = f.CategoryID
	post.LocationID = f.LocationID
	post.Image = f.Image
	if f.PubDate != nil {
		post.PubDate = *f.PubDate
	}
	if f.IsPublished != nil {
		post.IsPublished = *f.IsPublished
	}
}

// List renders the home feed: publicly visible posts, newest first,
// with comment counts, ten per page.
func (p *PostController) List(ctx *gin.Context) {
	now := time.Now()
	base := p.db.Model(&models.Post{}).Scopes(models.Visible(now))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return
	}

	page, offset := utils.Paginate(total, utils.ParsePage(ctx.Query("page")), utils.PostsPerPage)

	var posts []models.Post
	err := p.db.Scopes(models.Visible(now), models.ByNewest).
		Preload("Author").Preload("Category").Preload("Location").
		Offset(offset).Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return
	}
	if err := models.AnnotateCommentCounts(p.db, posts); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to count comments")
		return
	}

	utils.Render(ctx, "blog/index", gin.H{
		"posts":    posts,
		"page_obj": page,
	})
}

// Get renders the post detail page with its ordered comments and an
// empty comment form. An invisible post is a 404 for anyone but its
// author; ownership grants full visibility.
func (p *PostController) Get(ctx *gin.Context) {
	var post models.Post
	err := p.db.Preload("Author").Preload("Category").Preload("Location").
		First(&post, "posts.id = ?", ctx.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	userID, _ := getUserID(ctx)
	if !post.VisibleAt(time.Now()) && !models.CanMutate(userID, &post) {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	var comments []models.Comment
	err = p.db.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load comments")
		return
	}

	utils.Render(ctx, "blog/detail", gin.H{
		"post":     post,
		"comments": comments,
		"form":     gin.H{"text": ""},
	})
}

// Create persists a new post with the requesting user as author and
// redirects to the author's profile.
func (p *PostController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var form postForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if errs := form.validate(p.db); len(errs) > 0 {
		utils.Render(ctx, "blog/create", gin.H{"form": form, "errors": errs})
		return
	}

	// Published unless the form says otherwise.
	post := models.Post{AuthorID: userID, IsPublished: true}
	form.apply(&post)

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to create post")
		return
	}

	ctx.Redirect(http.StatusFound, profilePath(getUsername(ctx)))
}

// Update edits a post. A non-author is redirected to the detail page
// without any mutation.
func (p *PostController) Update(ctx *gin.Context) {
	var post models.Post
	if err := p.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	userID, _ := getUserID(ctx)
	if !models.CanMutate(userID, &post) {
		ctx.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	var form postForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}
	if errs := form.validate(p.db); len(errs) > 0 {
		utils.Render(ctx, "blog/create", gin.H{"form": form, "errors": errs})
		return
	}

	form.apply(&post)
	if err := p.db.Save(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to update post")
		return
	}

	ctx.Redirect(http.StatusFound, postDetailPath(post.ID))
}

// Delete removes a post after an author check, cascading to its
// comments through the foreign key. A GET renders the confirmation
// view instead; the single load backs both branches so the payload
// shown is exactly the record removed.
func (p *PostController) Delete(ctx *gin.Context) {
	var post models.Post
	err := p.db.Preload("Author").Preload("Category").Preload("Location").
		First(&post, "posts.id = ?", ctx.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	userID, _ := getUserID(ctx)
	if !models.CanMutate(userID, &post) {
		ctx.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	if ctx.Request.Method == http.MethodGet {
		utils.Render(ctx, "blog/create", gin.H{"form": post})
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to delete post")
		return
	}

	ctx.Redirect(http.StatusFound, homePath())
}

// Profile renders a user's posts. The profile owner sees everything
// they wrote; any other viewer sees only publicly visible posts.
func (p *PostController) Profile(ctx *gin.Context) {
	username := ctx.Param("username")

	var profile models.User
	if err := p.db.First(&profile, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to load user")
		return
	}

	viewerID, _ := getUserID(ctx)
	now := time.Now()

	scoped := func(db *gorm.DB) *gorm.DB {
		q := db.Where("posts.author_id = ?", profile.ID)
		if viewerID != profile.ID {
			q = q.Scopes(models.Visible(now))
		}
		return q
	}

	var total int64
	if err := p.db.Model(&models.Post{}).Scopes(scoped).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to count posts")
		return
	}

	page, offset := utils.Paginate(total, utils.ParsePage(ctx.Query("page")), utils.PostsPerPage)

	var posts []models.Post
	err := p.db.Scopes(scoped, models.ByNewest).
		Preload("Author").Preload("Category").Preload("Location").
		Offset(offset).Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to list posts")
		return
	}
	if err := models.AnnotateCommentCounts(p.db, posts); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to count comments")
		return
	}

	utils.Render(ctx, "blog/profile", gin.H{
		"profile":  profile,
		"posts":    posts,
		"page_obj": page,
	})
}
