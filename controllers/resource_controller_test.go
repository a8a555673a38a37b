package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
)

func newResourceRouter(kv store.KV) *gin.Engine {
	r := gin.New()
	rc := NewResourceController(kv)
	r.GET("/api/v1/resources", rc.ListResources)
	auth := r.Group("", asUser("nurse_tendai", models.RoleHealthcare))
	auth.POST("/api/v1/resources", rc.CreateResource)
	auth.PUT("/api/v1/resources/:id", rc.UpdateResource)
	auth.DELETE("/api/v1/resources/:id", rc.DeleteResource)
	return r
}

func TestResourceCreateThenList(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newResourceRouter(kv)

	w := doJSON(t, r, http.MethodPost, "/api/v1/resources", gin.H{
		"title":       "STI Basics",
		"description": "An introduction to common infections",
		"type":        "Articles",
		"category":    "STIs",
		"url":         "https://example.org/sti-basics",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	created := data["resource"].(map[string]interface{})
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "nurse_tendai", created["uploaded_by"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/resources", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	resources := data["resources"].([]interface{})
	require.Len(t, resources, 1)

	// substring search and "All" passthrough
	w = doJSON(t, r, http.MethodGet, "/api/v1/resources?search=basics&category=All", nil, nil)
	_, data = decodeEnvelope(t, w)
	assert.Len(t, data["resources"].([]interface{}), 1)

	w = doJSON(t, r, http.MethodGet, "/api/v1/resources?type=Books", nil, nil)
	_, data = decodeEnvelope(t, w)
	assert.Len(t, data["resources"].([]interface{}), 0)

	w = doJSON(t, r, http.MethodGet, "/api/v1/resources?uploaded_by=somebody_else", nil, nil)
	_, data = decodeEnvelope(t, w)
	assert.Len(t, data["resources"].([]interface{}), 0)
}

func TestResourceCreateInvalidType(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newResourceRouter(kv)

	w := doJSON(t, r, http.MethodPost, "/api/v1/resources", gin.H{
		"title": "Bad", "type": "Podcast",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40031, code)
}

func TestResourceUpdateMergesFields(t *testing.T) {
	kv := store.NewMemoryKV()
	seed := []models.Resource{
		{ID: "res-1", Title: "One", Description: "first", Type: "Articles", Category: "STIs", UploadedBy: "nurse_tendai"},
		{ID: "res-2", Title: "Two", Description: "second", Type: "Videos", Category: "Consent", UploadedBy: "nurse_tendai"},
	}
	require.NoError(t, store.SetJSON(context.Background(), kv, store.KeyResources, seed))
	r := newResourceRouter(kv)

	w := doJSON(t, r, http.MethodPut, "/api/v1/resources/res-1", gin.H{
		"title": "One, revised", "category": "Testing",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	updated := data["resource"].(map[string]interface{})
	assert.Equal(t, "One, revised", updated["title"])
	assert.Equal(t, "Testing", updated["category"])
	assert.Equal(t, "first", updated["description"])

	var stored []models.Resource
	_, err := store.GetJSON(context.Background(), kv, store.KeyResources, &stored)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Two", stored[1].Title)
}

func TestResourceUpdateUnknownID(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newResourceRouter(kv)

	w := doJSON(t, r, http.MethodPut, "/api/v1/resources/missing", gin.H{"title": "X"}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40430, code)
}

func TestResourceDeleteUnknownIsNoOp(t *testing.T) {
	kv := store.NewMemoryKV()
	seed := []models.Resource{
		{ID: "res-1", Title: "One", Type: "Articles"},
		{ID: "res-2", Title: "Two", Type: "Books"},
	}
	require.NoError(t, store.SetJSON(context.Background(), kv, store.KeyResources, seed))
	r := newResourceRouter(kv)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/resources/missing", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored []models.Resource
	_, err := store.GetJSON(context.Background(), kv, store.KeyResources, &stored)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/resources/res-1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored = nil
	_, err = store.GetJSON(context.Background(), kv, store.KeyResources, &stored)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "res-2", stored[0].ID)
}
