package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/davmoros/cronograma-backend/internal/config"
	"github.com/davmoros/cronograma-backend/internal/handler"
	"github.com/davmoros/cronograma-backend/internal/middleware"
	"github.com/davmoros/cronograma-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Schedule  *handler.ScheduleHandler
	Reference *handler.ReferenceHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for schedule mutations, per IP.
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMinute, time.Minute)

	// ─── 1. Schedule Group ─────────────────────────────────────────────
	scheduleAPI := router.Group("/api/v1/schedule")
	{
		scheduleAPI.POST("/classes", submitLimiter.Middleware(), handlers.Schedule.SubmitClass)
		scheduleAPI.DELETE("/classes/:group_key", submitLimiter.Middleware(), handlers.Schedule.DeleteClass)
		scheduleAPI.GET("/sessions", handlers.Schedule.ListSessions)
		scheduleAPI.GET("/export", handlers.Schedule.ExportCSV)
		scheduleAPI.GET("/audit", handlers.Schedule.ListAudit)
	}

	// ─── 2. Reference Group ────────────────────────────────────────────
	referenceAPI := router.Group("/api/v1/reference")
	{
		referenceAPI.GET("/programs", handlers.Reference.ListPrograms)
		referenceAPI.POST("/programs", handlers.Reference.CreateProgram)
		referenceAPI.GET("/instructors", handlers.Reference.ListInstructors)
		referenceAPI.POST("/instructors", handlers.Reference.CreateInstructor)
	}

	// ─── 3. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/schedule/stream", handlers.WS.ScheduleStream)
	}

	return router
}
