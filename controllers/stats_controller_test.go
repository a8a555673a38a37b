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

func newStatsRouter(kv store.KV) *gin.Engine {
	r := gin.New()
	sc := NewStatsController(kv)
	r.GET("/api/v1/stats/student/:username", sc.StudentStats)
	r.GET("/api/v1/stats/healthcare/:username", sc.HealthcareStats)
	return r
}

func seedStatsData(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, kv, store.KeyModules, []models.Module{
		{ID: "mod-1", Title: "One", UploadedBy: "drnkomo"},
		{ID: "mod-2", Title: "Two", UploadedBy: "someone_else"},
	}))
	require.NoError(t, store.SetJSON(ctx, kv, store.KeyProgress, map[string][]models.CourseProgress{
		"tariro": {
			{CourseID: "mod-1", Progress: 100, Completed: true},
			{CourseID: "mod-2", Progress: 30},
		},
	}))
	require.NoError(t, store.SetJSON(ctx, kv, store.KeyPosts, map[string][]models.Post{
		"1": {{ID: "p1", Author: "tariro"}, {ID: "p2", Author: "other"}},
		"2": {{ID: "p3", Author: "tariro"}},
	}))
	require.NoError(t, store.SetJSON(ctx, kv, store.KeyQuestions, []models.Question{
		{ID: "q1", AskedBy: "tariro", Status: models.QuestionAnswered, AnsweredBy: "drnkomo", Category: ""},
		{ID: "q2", AskedBy: "tariro", Status: models.QuestionAnswered, AnsweredBy: "other_doc", Category: "STIs"},
		{ID: "q3", AskedBy: "tariro", Status: models.QuestionPending},
	}))
	require.NoError(t, store.SetJSON(ctx, kv, store.KeyResources, []models.Resource{
		{ID: "r1", UploadedBy: "drnkomo"},
	}))
}

func TestStudentStats(t *testing.T) {
	kv := store.NewMemoryKV()
	seedStatsData(t, kv)
	r := newStatsRouter(kv)

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats/student/tariro", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	assert.Equal(t, float64(1), data["modules_completed"])
	assert.Equal(t, float64(2), data["modules_total"])
	assert.Equal(t, float64(2), data["community_posts"])
	assert.Equal(t, float64(3), data["questions_asked"])
}

func TestHealthcareStats(t *testing.T) {
	kv := store.NewMemoryKV()
	seedStatsData(t, kv)
	r := newStatsRouter(kv)

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats/healthcare/drnkomo", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	assert.Equal(t, float64(1), data["questions_answered"])
	assert.Equal(t, float64(2), data["total_questions_answered"])
	assert.Equal(t, float64(1), data["resources_uploaded"])
	assert.Equal(t, float64(1), data["modules_uploaded"])
	breakdown := data["topic_breakdown"].(map[string]interface{})
	// uncategorized answers fall into the default bucket
	assert.Equal(t, float64(1), breakdown["General Health"])
}

func TestStatsEmptyStore(t *testing.T) {
	kv := store.NewMemoryKV()
	r := newStatsRouter(kv)

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats/student/nobody", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	assert.Equal(t, float64(0), data["modules_completed"])
	assert.Equal(t, float64(0), data["modules_total"])
	assert.Equal(t, float64(0), data["community_posts"])
	assert.Equal(t, float64(0), data["questions_asked"])
}
