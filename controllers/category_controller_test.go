package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogum/blogum/models"
)

func TestCategoryPageListsVisiblePostsOfCategory(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")
	news := createCategory(t, db, "news", true)
	travel := createCategory(t, db, "travel", true)

	now := time.Now()
	inCategory := createPost(t, db, alice, &news, now.Add(-time.Hour), true)
	createPost(t, db, alice, &travel, now.Add(-time.Hour), true)
	createPost(t, db, alice, &news, now.Add(time.Hour), true)   // scheduled
	createPost(t, db, alice, &news, now.Add(-time.Hour), false) // draft

	w := doRequest(t, router, http.MethodGet, "/api/v1/categories/news/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeView(t, w)
	assert.Equal(t, "blog/category", env.Data.View)

	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data.Context["category"], &category))
	assert.Equal(t, news.ID, category.ID)

	posts := contextPosts(t, env)
	require.Len(t, posts, 1)
	assert.Equal(t, inCategory.ID, posts[0].ID)
}

func TestCategoryPage404s(t *testing.T) {
	db, router := newTestApp(t)
	createCategory(t, db, "backstage", false)

	w := doRequest(t, router, http.MethodGet, "/api/v1/categories/missing/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An unpublished category hides its page entirely.
	w = doRequest(t, router, http.MethodGet, "/api/v1/categories/backstage/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
