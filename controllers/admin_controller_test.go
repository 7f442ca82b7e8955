package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogum/blogum/models"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	db, router := newTestApp(t)
	bob := createUser(t, db, "bob")

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/categories", authToken(t, bob), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/admin/categories", authToken(t, bob), map[string]any{
		"title": "sneaky", "description": "x", "slug": "sneaky",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCategoryLifecycle(t *testing.T) {
	db, router := newTestApp(t)
	admin := createUser(t, db, "admin")
	token := authToken(t, admin)

	w := doRequest(t, router, http.MethodPost, "/api/v1/admin/categories", token, map[string]any{
		"title":       "News",
		"description": "current events",
		"slug":        "news",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var category models.Category
	require.NoError(t, db.First(&category, "slug = ?", "news").Error)
	assert.True(t, category.IsPublished)

	// The slug is taken now.
	w = doRequest(t, router, http.MethodPost, "/api/v1/admin/categories", token, map[string]any{
		"title": "Other news", "description": "more", "slug": "news",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Slugs with spaces never validate.
	w = doRequest(t, router, http.MethodPost, "/api/v1/admin/categories", token, map[string]any{
		"title": "Bad", "description": "x", "slug": "not a slug",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/admin/categories/%d", category.ID), token, map[string]any{
		"title":        "Archived news",
		"description":  "old events",
		"slug":         "news",
		"is_published": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&category, category.ID).Error)
	assert.Equal(t, "Archived news", category.Title)
	assert.False(t, category.IsPublished)

	w = doRequest(t, router, http.MethodGet, "/api/v1/admin/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/categories/%d", category.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var n int64
	db.Model(&models.Category{}).Count(&n)
	assert.Zero(t, n)
}

func TestDeleteCategoryClearsPostReferences(t *testing.T) {
	db, router := newTestApp(t)
	admin := createUser(t, db, "admin")
	news := createCategory(t, db, "news", true)
	post := createPost(t, db, admin, &news, time.Now().Add(-time.Hour), true)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/categories/%d", news.ID), authToken(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}

func TestAdminLocationLifecycle(t *testing.T) {
	db, router := newTestApp(t)
	admin := createUser(t, db, "admin")
	token := authToken(t, admin)

	w := doRequest(t, router, http.MethodPost, "/api/v1/admin/locations", token, map[string]any{
		"name": "Reykjavik",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var location models.Location
	require.NoError(t, db.First(&location, "name = ?", "Reykjavik").Error)

	w = doRequest(t, router, http.MethodPost, "/api/v1/admin/locations", token, map[string]any{
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/admin/locations/%d", location.ID), token, map[string]any{
		"name":         "Akureyri",
		"is_published": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&location, location.ID).Error)
	assert.Equal(t, "Akureyri", location.Name)
	assert.False(t, location.IsPublished)

	// A post tied to the location survives its deletion.
	post := createPost(t, db, admin, nil, time.Now().Add(-time.Hour), true)
	require.NoError(t, db.Model(&post).Update("location_id", location.ID).Error)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/locations/%d", location.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.LocationID)
}
