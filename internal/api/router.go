package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/td0m/studyman/internal/config"
	"github.com/td0m/studyman/internal/logger"
	"github.com/td0m/studyman/internal/requestid"
)

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// NewRouter wires the stub's routes and middleware.
func NewRouter(cfg *config.Config, records *Records, metrics *Metrics, l *zap.Logger) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(l))
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	h := NewSubjectHandler(records, metrics, l)
	subjects := r.Group("/api/subjects")
	subjects.GET("", h.List)
	subjects.POST("", h.Create)
	subjects.PUT("/:id", h.Update)
	subjects.DELETE("/:id", h.Delete)

	return r
}
