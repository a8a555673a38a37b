package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// StatsController derives per-user statistics. Everything is a full scan of
// the underlying collections on every call; nothing is cached or counted
// incrementally, so the numbers are only as consistent as the collections
// were at read time.
type StatsController struct {
	kv store.KV
}

// NewStatsController creates a StatsController.
func NewStatsController(kv store.KV) *StatsController {
	return &StatsController{kv: kv}
}

// StudentStats aggregates a student's dashboard numbers.
func (s *StatsController) StudentStats(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40080, "missing username")
		return
	}
	rctx := ctx.Request.Context()

	allProgress := map[string][]models.CourseProgress{}
	if _, err := store.GetJSON(rctx, s.kv, store.KeyProgress, &allProgress); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load progress")
		return
	}
	completed := 0
	for _, p := range allProgress[username] {
		if p.Completed {
			completed++
		}
	}

	var modules []models.Module
	if _, err := store.GetJSON(rctx, s.kv, store.KeyModules, &modules); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load modules")
		return
	}

	allPosts := map[string][]models.Post{}
	if _, err := store.GetJSON(rctx, s.kv, store.KeyPosts, &allPosts); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load posts")
		return
	}
	postCount := 0
	for _, posts := range allPosts {
		for _, p := range posts {
			if p.Author == username {
				postCount++
			}
		}
	}

	var questions []models.Question
	if _, err := store.GetJSON(rctx, s.kv, store.KeyQuestions, &questions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to load questions")
		return
	}
	asked := 0
	for _, q := range questions {
		if q.AskedBy == username {
			asked++
		}
	}

	utils.Success(ctx, gin.H{
		"modules_completed": completed,
		"modules_total":     len(modules),
		"community_posts":   postCount,
		"questions_asked":   asked,
	})
}

// HealthcareStats aggregates a healthcare professional's dashboard numbers,
// including a per-category breakdown of the questions they answered.
func (s *StatsController) HealthcareStats(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40081, "missing username")
		return
	}
	rctx := ctx.Request.Context()

	var questions []models.Question
	if _, err := store.GetJSON(rctx, s.kv, store.KeyQuestions, &questions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50084, "failed to load questions")
		return
	}
	answeredByUser := 0
	totalAnswered := 0
	topicBreakdown := map[string]int{}
	for _, q := range questions {
		if q.Status != models.QuestionAnswered {
			continue
		}
		totalAnswered++
		if q.AnsweredBy != username {
			continue
		}
		answeredByUser++
		category := q.Category
		if category == "" {
			category = "General Health"
		}
		topicBreakdown[category]++
	}

	var resources []models.Resource
	if _, err := store.GetJSON(rctx, s.kv, store.KeyResources, &resources); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50085, "failed to load resources")
		return
	}
	resourceCount := 0
	for _, r := range resources {
		if r.UploadedBy == username {
			resourceCount++
		}
	}

	var modules []models.Module
	if _, err := store.GetJSON(rctx, s.kv, store.KeyModules, &modules); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50086, "failed to load modules")
		return
	}
	moduleCount := 0
	for _, m := range modules {
		if m.UploadedBy == username {
			moduleCount++
		}
	}

	utils.Success(ctx, gin.H{
		"questions_answered":       answeredByUser,
		"total_questions_answered": totalAnswered,
		"resources_uploaded":       resourceCount,
		"modules_uploaded":         moduleCount,
		"topic_breakdown":          topicBreakdown,
	})
}
