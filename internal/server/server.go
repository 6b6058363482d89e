// Package server assembles the gin engine: middleware, API routes, metrics and
// static files.
package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type Config struct {
	APIPrefix      string
	UploadDir      string
	FrontendDir    string
	AllowedOrigins []string
}

type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

func NewRouter(cfg Config, log logger.ZapLogger, reg Registry, handlers ...RouteRegistrar) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewMetrics(reg).Handler())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group(cfg.APIPrefix)
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	r.NoRoute(fallback(cfg))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// fallback answers unknown API paths with a JSON 404 and serves the frontend
// bundle for everything else, falling back to index.html for client routes.
func fallback(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if cfg.FrontendDir == "" || strings.HasPrefix(path, cfg.APIPrefix) || c.Request.Method != http.MethodGet {
			c.AbortWithStatusJSON(http.StatusNotFound, httpx.Envelope{Success: false, Message: "route not found"})
			return
		}

		file := filepath.Join(cfg.FrontendDir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(cfg.FrontendDir, "index.html"))
	}
}
