package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, h http.Handler, token, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")

	w := uploadRequest(t, router, authToken(t, alice), "photo.png")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.URL, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(resp.Data.URL, ".png"))
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	db, router := newTestApp(t)
	alice := createUser(t, db, "alice")

	w := uploadRequest(t, router, authToken(t, alice), "script.exe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresAuth(t *testing.T) {
	_, router := newTestApp(t)
	w := uploadRequest(t, router, "", "photo.png")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
