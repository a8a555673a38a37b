package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthed-zw/backend/config"
	"github.com/healthed-zw/backend/controllers"
	"github.com/healthed-zw/backend/middleware"
	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, kv store.KV) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Count requests per day for the diagnostic endpoint
	r.Use(middleware.ActivityRecorder())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	resourceController := controllers.NewResourceController(kv)
	moduleController := controllers.NewModuleController(kv)
	progressController := controllers.NewProgressController(kv)
	communityController := controllers.NewCommunityController(kv)
	qaController := controllers.NewQAController(kv)
	statsController := controllers.NewStatsController(kv)
	systemController := controllers.NewSystemController(db, kv)
	contactController := controllers.NewContactController(kv)
	chatbotController := controllers.NewChatbotController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/resources", resourceController.ListResources)
	api.GET("/modules", moduleController.ListModules)
	api.GET("/community/channels", communityController.ListChannels)
	api.GET("/community/posts/:postId", communityController.ListPosts)
	api.GET("/community/posts/:postId/replies", communityController.ListReplies)
	api.GET("/community/posts/:postId/liked/:username", communityController.LikedCheck)
	api.GET("/qa/questions", qaController.ListQuestions)
	api.GET("/stats/student/:username", statsController.StudentStats)
	api.GET("/stats/healthcare/:username", statsController.HealthcareStats)
	api.POST("/chatbot/message", chatbotController.Message)
	api.GET("/chatbot/faqs", chatbotController.FAQs)
	api.POST("/contact", contactController.SubmitMessage)

	// Diagnostics and seeding
	api.GET("/database/info", systemController.DatabaseInfo)
	api.POST("/init-data", systemController.InitData)
	api.POST("/init-channels", communityController.InitChannels)

	// Authenticated mutations
	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/course-progress", progressController.SaveProgress)
	protected.GET("/course-progress/:username", progressController.GetProgress)
	protected.POST("/community/posts", communityController.CreatePost)
	protected.POST("/community/posts/:postId/like", communityController.ToggleLike)
	protected.POST("/community/posts/:postId/replies", communityController.CreateReply)
	protected.POST("/qa/questions", qaController.CreateQuestion)

	// Healthcare-only content management
	healthcare := api.Group("")
	healthcare.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleHealthcare, models.RoleAdmin))
	healthcare.POST("/resources", resourceController.CreateResource)
	healthcare.PUT("/resources/:id", resourceController.UpdateResource)
	healthcare.DELETE("/resources/:id", resourceController.DeleteResource)
	healthcare.POST("/modules", moduleController.CreateModule)
	healthcare.PUT("/modules/:id", moduleController.UpdateModule)
	healthcare.DELETE("/modules/:id", moduleController.DeleteModule)
	healthcare.POST("/qa/answer", qaController.AnswerQuestion)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
