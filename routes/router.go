package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"publication-portal/services"
	"publication-portal/storage"
)

// Deps bündelt alles, was die Routen brauchen.
type Deps struct {
	DB           *gorm.DB
	Publications *services.PublicationService
	Directory    *services.DirectoryService
	Logger       *zap.Logger
}

// NewRouter baut die gin-Engine mit Middleware und allen Routen.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(d.Logger))
	router.Use(metricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	setupHealthRoutes(router, d.DB)

	setupPublicationRoutes(router, d.Publications, d.Logger)
	setupDirectoryRoutes(router, d.Directory, d.Logger)
	return router
}

func setupHealthRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := storage.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
