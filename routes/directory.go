package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"publication-portal/services"
)

func setupDirectoryRoutes(router *gin.Engine, svc *services.DirectoryService, log *zap.Logger) {
	router.GET("/teachers", func(c *gin.Context) {
		teachers, err := svc.Teachers(c.Request.Context())
		if err != nil {
			loggerFor(c, log).Error("Database query for teachers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, teachers)
	})

	router.GET("/journals", func(c *gin.Context) {
		journals, err := svc.Journals(c.Request.Context())
		if err != nil {
			loggerFor(c, log).Error("Database query for journals failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, journals)
	})
}
