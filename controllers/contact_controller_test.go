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

func newContactRouter(kv store.KV) *gin.Engine {
	r := gin.New()
	cc := NewContactController(kv)
	r.POST("/api/v1/contact", cc.SubmitMessage)
	return r
}

func TestContactMessageStored(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newContactRouter(kv)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contact", gin.H{
		"name":    "Tariro Moyo",
		"email":   "tariro@example.org",
		"subject": "Peer education",
		"message": "How do I volunteer?",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var messages []models.ContactMessage
	_, err := store.GetJSON(context.Background(), kv, store.KeyContact, &messages)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.NotEmpty(t, messages[0].ID)
	assert.Equal(t, "Tariro Moyo", messages[0].Name)
	assert.Equal(t, "tariro@example.org", messages[0].Email)
	assert.Equal(t, "How do I volunteer?", messages[0].Message)
	assert.NotEmpty(t, messages[0].CreatedAt)
}

func TestContactMessageSanitized(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newContactRouter(kv)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contact", gin.H{
		"name":    "Visitor",
		"email":   "visitor@example.org",
		"message": `hello <script>alert("x")</script>`,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var messages []models.ContactMessage
	_, err := store.GetJSON(context.Background(), kv, store.KeyContact, &messages)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.NotContains(t, messages[0].Message, "<script>")
}

func TestContactValidation(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newContactRouter(kv)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contact", gin.H{
		"name": "No Email", "message": "hi",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40090, code)

	var messages []models.ContactMessage
	found, err := store.GetJSON(context.Background(), kv, store.KeyContact, &messages)
	require.NoError(t, err)
	assert.False(t, found)
}
