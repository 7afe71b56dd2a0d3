// Package httpapi exposes projects over a JSON API for browser clients.
package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mapmyfirm/internal/ports"
)

// DefaultOrigins are the local dev servers allowed by CORS
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// Options configures the router
type Options struct {
	// AllowOrigins overrides DefaultOrigins
	AllowOrigins []string
	Log          *slog.Logger
}

// NewRouter builds the gin engine with every API route registered
func NewRouter(store ports.ProjectStore, opts Options) *gin.Engine {
	h := NewHandlers(store, opts.Log)
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = DefaultOrigins
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))
	r.Use(corsMiddleware(origins))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/projects", h.ListProjects)
		api.POST("/projects", h.CreateProject)
		api.POST("/import", h.ImportProject)

		project := api.Group("/projects/:id")
		{
			project.GET("", h.GetProject)
			project.PUT("", h.SaveProject)
			project.DELETE("", h.DeleteProject)
			project.GET("/tree", h.GetTree)
			project.POST("/match", h.MatchLocations)
			project.POST("/checklist", h.GenerateChecklist)
			project.GET("/stats", h.GetStats)
			project.GET("/export.json", h.ExportJSON)
			project.GET("/export.csv", h.ExportCSV)
		}
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	})
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
