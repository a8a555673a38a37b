package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

const modulesCachePrefix = "cache:modules:list"

// ModuleController manages the educational modules collection. Modules are
// kept most-recent-first: creation prepends.
type ModuleController struct {
	kv store.KV
}

// NewModuleController creates a ModuleController.
func NewModuleController(kv store.KV) *ModuleController {
	return &ModuleController{kv: kv}
}

// ListModules returns all modules, newest first.
func (m *ModuleController) ListModules(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(modulesCachePrefix); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var modules []models.Module
	if _, err := store.GetJSON(ctx.Request.Context(), m.kv, store.KeyModules, &modules); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to get modules")
		return
	}
	if modules == nil {
		modules = []models.Module{}
	}

	payload := gin.H{"modules": modules}
	utils.CacheSetJSON(modulesCachePrefix, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// CreateModule prepends a new module to the collection.
func (m *ModuleController) CreateModule(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Duration    string `json:"duration"`
		Difficulty  string `json:"difficulty"`
		ContentType string `json:"content_type"`
		ContentURL  string `json:"content_url"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	if req.Difficulty != "" && !containsString(models.ModuleDifficulties, req.Difficulty) {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid difficulty")
		return
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "link"
	}
	if !containsString(models.ModuleContentTypes, contentType) {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid content type")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40140, "unauthorized")
		return
	}

	module := models.Module{
		ID:          utils.NewID(),
		Title:       utils.Sanitize(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Category:    req.Category,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		ContentType: contentType,
		ContentURL:  req.ContentURL,
		UploadedBy:  username,
		CreatedAt:   nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), m.kv, store.KeyModules,
		func(cur []models.Module) ([]models.Module, error) {
			return append([]models.Module{module}, cur...), nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create module")
		return
	}

	utils.InvalidateByPrefix(modulesCachePrefix)
	utils.Success(ctx, gin.H{"module": module})
}

// UpdateModule shallow-merges provided fields into an existing module.
func (m *ModuleController) UpdateModule(ctx *gin.Context) {
	moduleID := ctx.Param("id")

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Duration    *string `json:"duration"`
		Difficulty  *string `json:"difficulty"`
		ContentType *string `json:"content_type"`
		ContentURL  *string `json:"content_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid request payload")
		return
	}
	if req.Difficulty != nil && !containsString(models.ModuleDifficulties, *req.Difficulty) {
		utils.Error(ctx, http.StatusBadRequest, 40044, "invalid difficulty")
		return
	}
	if req.ContentType != nil && !containsString(models.ModuleContentTypes, *req.ContentType) {
		utils.Error(ctx, http.StatusBadRequest, 40045, "invalid content type")
		return
	}

	var updated models.Module
	_, err := store.Mutate(ctx.Request.Context(), m.kv, store.KeyModules,
		func(cur []models.Module) ([]models.Module, error) {
			for i := range cur {
				if cur[i].ID != moduleID {
					continue
				}
				if req.Title != nil {
					cur[i].Title = utils.Sanitize(strings.TrimSpace(*req.Title))
				}
				if req.Description != nil {
					cur[i].Description = utils.Sanitize(*req.Description)
				}
				if req.Category != nil {
					cur[i].Category = *req.Category
				}
				if req.Duration != nil {
					cur[i].Duration = *req.Duration
				}
				if req.Difficulty != nil {
					cur[i].Difficulty = *req.Difficulty
				}
				if req.ContentType != nil {
					cur[i].ContentType = *req.ContentType
				}
				if req.ContentURL != nil {
					cur[i].ContentURL = *req.ContentURL
				}
				updated = cur[i]
				return cur, nil
			}
			return nil, store.ErrNotFound
		})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "module not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to update module")
		return
	}

	utils.InvalidateByPrefix(modulesCachePrefix)
	utils.Success(ctx, gin.H{"module": updated})
}

// DeleteModule removes a module; unknown ids are a no-op success.
func (m *ModuleController) DeleteModule(ctx *gin.Context) {
	moduleID := ctx.Param("id")

	_, err := store.Mutate(ctx.Request.Context(), m.kv, store.KeyModules,
		func(cur []models.Module) ([]models.Module, error) {
			filtered := make([]models.Module, 0, len(cur))
			for _, mod := range cur {
				if mod.ID != moduleID {
					filtered = append(filtered, mod)
				}
			}
			return filtered, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to delete module")
		return
	}

	utils.InvalidateByPrefix(modulesCachePrefix)
	utils.Success(ctx, gin.H{"message": "module deleted"})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
