package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthed-zw/backend/middleware"
	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// SystemController exposes diagnostics and data seeding.
type SystemController struct {
	db *gorm.DB
	kv store.KV
}

// NewSystemController creates a SystemController.
func NewSystemController(db *gorm.DB, kv store.KV) *SystemController {
	return &SystemController{db: db, kv: kv}
}

// DatabaseInfo probes the relational tables and reports sample rows plus
// today's request count. Diagnostic only.
func (s *SystemController) DatabaseInfo(ctx *gin.Context) {
	tables := gin.H{}

	var students []models.Student
	if err := s.db.Limit(5).Find(&students).Error; err != nil {
		tables["students"] = fmt.Sprintf("error: %v", err)
		students = []models.Student{}
	} else {
		tables["students"] = fmt.Sprintf("connected (%d records found)", len(students))
	}

	var users []models.User
	if err := s.db.Select("username", "user_type", "registration_number").Limit(5).Find(&users).Error; err != nil {
		tables["users"] = fmt.Sprintf("error: %v", err)
		users = []models.User{}
	} else {
		tables["users"] = fmt.Sprintf("connected (%d records found)", len(users))
	}

	utils.Success(ctx, gin.H{
		"tables": tables,
		"sample_data": gin.H{
			"students": students,
			"users":    users,
		},
		"requests_today": middleware.RequestsToday(),
	})
}

// InitData seeds default application data. Channels are only written when
// the set is missing or empty; existing data is never overwritten.
func (s *SystemController) InitData(ctx *gin.Context) {
	var channels []models.Channel
	if _, err := store.GetJSON(ctx.Request.Context(), s.kv, store.KeyChannels, &channels); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to inspect channels")
		return
	}
	if len(channels) == 0 {
		if err := store.SetJSON(ctx.Request.Context(), s.kv, store.KeyChannels, models.DefaultChannels()); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to initialize channels")
			return
		}
		utils.InvalidateByPrefix(channelsCachePrefix)
	}

	utils.Success(ctx, gin.H{"message": "default data initialized"})
}
