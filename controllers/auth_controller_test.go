package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogum/blogum/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db, router := newTestApp(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reg struct {
		Data struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Data.Token)
	assert.Equal(t, "carol", reg.Data.User.Username)

	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "carol").Error)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "carol",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "carol",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsBadUsernamesAndDuplicates(t *testing.T) {
	db, router := newTestApp(t)
	createUser(t, db, "alice")

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "no spaces here",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "short-pass",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	db, router := newTestApp(t)
	// Dedicated user: the revocation list is keyed by token string and
	// outlives this router, so no other test may mint an equal token.
	dave := createUser(t, db, "dave")
	token := authToken(t, dave)

	w := doRequest(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer authenticates.
	w = doRequest(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")

	w := doRequest(t, router, http.MethodGet, "/api/v1/auth/me", authToken(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, alice.ID, resp.Data.ID)
	assert.Equal(t, "alice", resp.Data.Username)
}

func TestUpdateProfile(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")

	w := doRequest(t, router, http.MethodPatch, "/api/v1/auth/profile", authToken(t, alice), map[string]any{
		"email":      "new@example.com",
		"first_name": "Alice",
		"last_name":  "Liddell",
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/alice", w.Header().Get("Location"))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, alice.ID).Error)
	assert.Equal(t, "new@example.com", reloaded.Email)
	assert.Equal(t, "Alice", reloaded.FirstName)
}

func TestUpdateProfileInvalidEmailRendersErrors(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")

	w := doRequest(t, router, http.MethodPatch, "/api/v1/auth/profile", authToken(t, alice), map[string]any{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeView(t, w)
	assert.Equal(t, "blog/user", env.Data.View)
	assert.Contains(t, string(env.Data.Context["errors"]), "email")

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, alice.ID).Error)
	assert.Equal(t, alice.Email, reloaded.Email)
}
