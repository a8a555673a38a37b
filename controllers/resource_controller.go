package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// ResourceController manages the resource library collection.
type ResourceController struct {
	kv store.KV
}

// NewResourceController creates a ResourceController.
func NewResourceController(kv store.KV) *ResourceController {
	return &ResourceController{kv: kv}
}

// ListResources returns resources filtered in memory. Category, type and
// uploader are exact matches ("All" means no filter); search is a substring
// match against title and description.
func (r *ResourceController) ListResources(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	resType := strings.TrimSpace(ctx.Query("type"))
	uploadedBy := strings.TrimSpace(ctx.Query("uploaded_by"))
	search := strings.ToLower(strings.TrimSpace(ctx.Query("search")))

	var resources []models.Resource
	if _, err := store.GetJSON(ctx.Request.Context(), r.kv, store.KeyResources, &resources); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to get resources")
		return
	}

	filtered := make([]models.Resource, 0, len(resources))
	for _, res := range resources {
		if category != "" && category != "All" && res.Category != category {
			continue
		}
		if resType != "" && resType != "All" && res.Type != resType {
			continue
		}
		if uploadedBy != "" && res.UploadedBy != uploadedBy {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(res.Title), search) &&
			!strings.Contains(strings.ToLower(res.Description), search) {
			continue
		}
		filtered = append(filtered, res)
	}

	utils.Success(ctx, gin.H{"resources": filtered})
}

// CreateResource appends a new resource to the collection.
func (r *ResourceController) CreateResource(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Description string `json:"description"`
		Type        string `json:"type" binding:"required"`
		Category    string `json:"category"`
		URL         string `json:"url"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	if !validResourceType(req.Type) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid resource type")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	resource := models.Resource{
		ID:          utils.NewID(),
		Title:       utils.Sanitize(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Type:        req.Type,
		Category:    req.Category,
		URL:         req.URL,
		UploadedBy:  username,
		CreatedAt:   nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), r.kv, store.KeyResources,
		func(cur []models.Resource) ([]models.Resource, error) {
			return append(cur, resource), nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to create resource")
		return
	}

	utils.Success(ctx, gin.H{"resource": resource})
}

// UpdateResource shallow-merges provided fields into an existing resource.
// The id and uploader are immutable.
func (r *ResourceController) UpdateResource(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Type        *string `json:"type"`
		Category    *string `json:"category"`
		URL         *string `json:"url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}
	if req.Type != nil && !validResourceType(*req.Type) {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid resource type")
		return
	}

	var updated models.Resource
	_, err := store.Mutate(ctx.Request.Context(), r.kv, store.KeyResources,
		func(cur []models.Resource) ([]models.Resource, error) {
			for i := range cur {
				if cur[i].ID != resourceID {
					continue
				}
				if req.Title != nil {
					cur[i].Title = utils.Sanitize(strings.TrimSpace(*req.Title))
				}
				if req.Description != nil {
					cur[i].Description = utils.Sanitize(*req.Description)
				}
				if req.Type != nil {
					cur[i].Type = *req.Type
				}
				if req.Category != nil {
					cur[i].Category = *req.Category
				}
				if req.URL != nil {
					cur[i].URL = *req.URL
				}
				updated = cur[i]
				return cur, nil
			}
			return nil, store.ErrNotFound
		})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "resource not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to update resource")
		return
	}

	utils.Success(ctx, gin.H{"resource": updated})
}

// DeleteResource filters the id out of the collection. Deleting an unknown
// id is a no-op success.
func (r *ResourceController) DeleteResource(ctx *gin.Context) {
	resourceID := ctx.Param("id")

	_, err := store.Mutate(ctx.Request.Context(), r.kv, store.KeyResources,
		func(cur []models.Resource) ([]models.Resource, error) {
			filtered := make([]models.Resource, 0, len(cur))
			for _, res := range cur {
				if res.ID != resourceID {
					filtered = append(filtered, res)
				}
			}
			return filtered, nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to delete resource")
		return
	}

	utils.Success(ctx, gin.H{"message": "resource deleted"})
}

func validResourceType(t string) bool {
	for _, v := range models.ResourceTypes {
		if t == v {
			return true
		}
	}
	return false
}
