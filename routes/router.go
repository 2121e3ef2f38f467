package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/momentum-app/momentum/config"
	"github.com/momentum-app/momentum/controllers"
	"github.com/momentum-app/momentum/middleware"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/storage"
	"github.com/momentum-app/momentum/utils"
)

// SetupRouter wires routes, middlewares, services, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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

	if cfg.MetricsEnabled {
		r.Use(utils.MetricsMiddleware())
		r.GET("/metrics", utils.MetricsHandler())
	}

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	// Core wiring: the streak tracker resolves day boundaries in the
	// configured zone; every write path shares one store.
	clock := services.SystemClock()
	loc := utils.LoadLocation(cfg.DayBoundaryTimezone)
	store := storage.NewGormStore(db)
	emitter := services.NewTimelineEventEmitter(clock)
	tracker := services.NewStreakTracker(store, emitter, loc)
	ledger := services.NewEngagementLedger(store, clock)
	ranking := services.NewRankingService(store)

	userController := controllers.NewUserController(db)
	challengeController := controllers.NewChallengeController(db, tracker, clock)
	postController := controllers.NewPostController(db, store, emitter, ledger)
	rankingController := controllers.NewRankingController(ranking)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	api.POST("/users/login", middleware.RateLimitMiddleware(), userController.Login)
	api.GET("/users/:id", userController.GetUser)

	api.GET("/challenges", challengeController.ListChallenges)
	api.GET("/challenges/joined", challengeController.ListJoined)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)

	api.GET("/ranking/total", rankingController.TotalRanking)
	api.GET("/stats", statsController.GetStats)

	writes := api.Group("")
	writes.Use(middleware.RateLimitMiddleware())
	writes.POST("/challenges", challengeController.CreateChallenge)
	writes.POST("/challenges/:id/join", challengeController.JoinChallenge)
	writes.POST("/challenges/:id/checkin", challengeController.CheckIn)
	writes.POST("/posts", postController.CreatePost)
	writes.POST("/posts/:id/upvote", postController.Upvote)
	writes.POST("/posts/:id/downvote", postController.Downvote)
	writes.POST("/posts/:id/bookmark", postController.Bookmark)
	writes.POST("/posts/:id/comments", postController.CreateComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
