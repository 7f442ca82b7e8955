package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogum/blogum/models"
)

func TestCreateComment(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), authToken(t, bob), map[string]any{
		"text": "great read",
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var comment models.Comment
	require.NoError(t, db.First(&comment, "post_id = ?", post.ID).Error)
	assert.Equal(t, bob.ID, comment.AuthorID)
	assert.Equal(t, "great read", comment.Text)
}

func TestCreateCommentOnMissingPostIs404(t *testing.T) {
	db, router := newTestApp(t)
	bob := createUser(t, db, "bob")

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/999/comments", authToken(t, bob), map[string]any{
		"text": "into the void",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCommentInvalidFormSilentlyRedirects(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), authToken(t, bob), map[string]any{
		"text": "   ",
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var n int64
	db.Model(&models.Comment{}).Count(&n)
	assert.Zero(t, n)
}

func TestUpdateCommentByNonAuthorRedirectsWithoutMutation(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	comment := models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "original"}
	require.NoError(t, db.Create(&comment).Error)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, comment.ID), authToken(t, alice), map[string]any{
		"text": "defaced",
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var reloaded models.Comment
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.Equal(t, "original", reloaded.Text)
}

func TestUpdateCommentByAuthor(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	comment := models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "original"}
	require.NoError(t, db.Create(&comment).Error)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, comment.ID), authToken(t, bob), map[string]any{
		"text": "edited",
	})
	require.Equal(t, http.StatusFound, w.Code)

	var reloaded models.Comment
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.Equal(t, "edited", reloaded.Text)
}

func TestUpdateCommentEmptyTextRendersErrors(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	comment := models.Comment{PostID: post.ID, AuthorID: alice.ID, Text: "original"}
	require.NoError(t, db.Create(&comment).Error)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, comment.ID), authToken(t, alice), map[string]any{
		"text": "",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeView(t, w)
	assert.Equal(t, "blog/comment", env.Data.View)
	assert.Contains(t, string(env.Data.Context["errors"]), "text")

	var reloaded models.Comment
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.Equal(t, "original", reloaded.Text)
}

func TestCommentUnderWrongPostIs404(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	news := createCategory(t, db, "news", true)
	first := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	second := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	comment := models.Comment{PostID: first.ID, AuthorID: alice.ID, Text: "on the first"}
	require.NoError(t, db.Create(&comment).Error)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d/comments/%d", second.ID, comment.ID), authToken(t, alice), map[string]any{
		"text": "moved",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentConfirmationAndRemoval(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, alice, &news, time.Now().Add(-time.Hour), true)
	comment := models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "doomed"}
	require.NoError(t, db.Create(&comment).Error)

	// GET renders the confirmation with the comment itself.
	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments/%d/delete", post.ID, comment.ID), authToken(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeView(t, w)
	var shown models.Comment
	require.NoError(t, json.Unmarshal(env.Data.Context["comment"], &shown))
	assert.Equal(t, comment.ID, shown.ID)

	// A non-author cannot delete.
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, comment.ID), authToken(t, alice), nil)
	require.Equal(t, http.StatusFound, w.Code)
	var n int64
	db.Model(&models.Comment{}).Count(&n)
	require.Equal(t, int64(1), n)

	// The author can.
	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, comment.ID), authToken(t, bob), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))
	db.Model(&models.Comment{}).Count(&n)
	assert.Zero(t, n)
}
