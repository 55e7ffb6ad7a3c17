package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/learnloop/tutor-gateway/src/decision"
	"github.com/learnloop/tutor-gateway/src/gateway/data"
)

const (
	appName    = "Tutor Gateway"
	appVersion = "2.0.0"
)

func New(router *decision.Router, sink data.Sink) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))
	attachRoutes(r, router, sink)
	return r
}

func attachRoutes(r *gin.Engine, router *decision.Router, sink data.Sink) {
	doubtH := NewDoubt(router, sink)
	problemH := NewProblem(router, sink)
	videoH := NewVideo(router, sink)
	progressH := NewProgress(router, sink)
	dashH := NewDashboard(router, sink)
	mistakeH := NewMistakes(router, sink)

	api := r.Group("/api")
	{
		api.POST("/doubt", doubtH.Resolve)
		api.POST("/problem/solve", problemH.Solve)
		api.POST("/problem/hint", problemH.Hint)
		api.POST("/problem/progress", problemH.Progress)
		api.POST("/video/assist", videoH.Assist)
		api.POST("/progress", progressH.Track)
		api.GET("/dashboard", dashH.Show)
		api.POST("/dashboard", dashH.Create)
		api.POST("/mistakes", mistakeH.Analyze)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"app_name":  appName,
			"version":   appVersion,
			"timestamp": time.Now().UTC().Unix(),
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": appName,
			"version": appVersion,
			"features": []string{
				"Live Doubt Resolution",
				"Guided Problem Solving",
				"Adaptive Video Assistance",
				"Progress Tracking",
				"Dashboard & Revision",
				"Mistake Analysis",
			},
			"endpoints": gin.H{
				"doubt":             "/api/doubt",
				"problem_solve":     "/api/problem/solve",
				"hint":              "/api/problem/hint",
				"problem_progress":  "/api/problem/progress",
				"video_assist":      "/api/video/assist",
				"progress_tracking": "/api/progress",
				"dashboard":         "/api/dashboard",
				"mistakes":          "/api/mistakes",
			},
			"health": "/health",
		})
	})
}
