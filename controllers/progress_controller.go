package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// ProgressController tracks per-user course progress. The collection is a
// username-keyed map of progress lists; upserts match on course_id and keep
// no history.
type ProgressController struct {
	kv store.KV
}

// NewProgressController creates a ProgressController.
func NewProgressController(kv store.KV) *ProgressController {
	return &ProgressController{kv: kv}
}

// GetProgress returns the progress list for a username.
func (p *ProgressController) GetProgress(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40050, "missing username")
		return
	}

	allProgress := map[string][]models.CourseProgress{}
	if _, err := store.GetJSON(ctx.Request.Context(), p.kv, store.KeyProgress, &allProgress); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to get course progress")
		return
	}

	progress := allProgress[username]
	if progress == nil {
		progress = []models.CourseProgress{}
	}
	utils.Success(ctx, gin.H{"progress": progress})
}

// SaveProgress upserts the authenticated user's progress for one course.
func (p *ProgressController) SaveProgress(ctx *gin.Context) {
	var req struct {
		CourseID  string `json:"course_id" binding:"required"`
		Progress  int    `json:"progress"`
		Completed bool   `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		utils.Error(ctx, http.StatusBadRequest, 40052, "progress must be between 0 and 100")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40150, "unauthorized")
		return
	}

	entry := models.CourseProgress{
		CourseID:     req.CourseID,
		Progress:     req.Progress,
		Completed:    req.Completed,
		LastAccessed: nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), p.kv, store.KeyProgress,
		func(cur map[string][]models.CourseProgress) (map[string][]models.CourseProgress, error) {
			if cur == nil {
				cur = map[string][]models.CourseProgress{}
			}
			list := cur[username]
			for i := range list {
				if list[i].CourseID == req.CourseID {
					list[i] = entry
					cur[username] = list
					return cur, nil
				}
			}
			cur[username] = append(list, entry)
			return cur, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to save course progress")
		return
	}

	utils.Success(ctx, gin.H{"progress": entry})
}
