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

// CommentController manages comments under posts.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

type commentForm struct {
	Text string `json:"text"`
}

// Create adds a comment to an existing post by the requesting user.
// An invalid form silently redirects back to the post without
// persisting anything; no error is surfaced to the commenter.
func (c *CommentController) Create(ctx *gin.Context) {
	var post models.Post
	if err := c.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var form commentForm
	_ = ctx.ShouldBindJSON(&form)
	text := utils.Sanitize(form.Text)
	if strings.TrimSpace(text) == "" {
		ctx.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     text,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to create comment")
		return
	}

	ctx.Redirect(http.StatusFound, postDetailPath(post.ID))
}

// Update edits a comment. The comment must belong to the post in the
// URL; a non-author is redirected to the post without mutation.
func (c *CommentController) Update(ctx *gin.Context) {
	comment, ok := c.load(ctx)
	if !ok {
		return
	}

	userID, _ := getUserID(ctx)
	if !models.CanMutate(userID, &comment) {
		ctx.Redirect(http.StatusFound, postDetailPath(comment.PostID))
		return
	}

	var form commentForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}
	text := utils.Sanitize(form.Text)
	if strings.TrimSpace(text) == "" {
		utils.Render(ctx, "blog/comment", gin.H{
			"comment": comment,
			"form":    form,
			"errors":  gin.H{"text": "text is required"},
		})
		return
	}

	comment.Text = text
	if err := c.db.Save(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to update comment")
		return
	}

	ctx.Redirect(http.StatusFound, postDetailPath(comment.PostID))
}

// Delete removes a comment after an author check. A GET renders the
// confirmation view; the mutating method performs the deletion.
func (c *CommentController) Delete(ctx *gin.Context) {
	comment, ok := c.load(ctx)
	if !ok {
		return
	}

	userID, _ := getUserID(ctx)
	if !models.CanMutate(userID, &comment) {
		ctx.Redirect(http.StatusFound, postDetailPath(comment.PostID))
		return
	}

	if ctx.Request.Method == http.MethodGet {
		utils.Render(ctx, "blog/comment", gin.H{"comment": comment})
		return
	}

	if err := c.db.Delete(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to delete comment")
		return
	}

	ctx.Redirect(http.StatusFound, postDetailPath(comment.PostID))
}

// load fetches the comment scoped to the post in the URL, answering
// 404 itself when either half is missing.
func (c *CommentController) load(ctx *gin.Context) (models.Comment, bool) {
	var comment models.Comment
	err := c.db.Preload("Author").
		Where("id = ? AND post_id = ?", ctx.Param("commentID"), ctx.Param("id")).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "comment not found")
			return comment, false
		}
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to load comment")
		return comment, false
	}
	return comment, true
}
