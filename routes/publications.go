package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"publication-portal/models"
	"publication-portal/services"
)

const constraintMessage = "journal or teacher does not exist, or a teacher is listed twice as author"

func setupPublicationRoutes(router *gin.Engine, svc *services.PublicationService, log *zap.Logger) {
	rg := router.Group("/publications")

	// GET /publications?pageNumber=1&pageSize=10
	rg.GET("", func(c *gin.Context) {
		var q struct {
			PageNumber int `form:"pageNumber,default=1"`
			PageSize   int `form:"pageSize,default=10"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageNumber and pageSize must be integers"})
			return
		}

		result, err := svc.List(c.Request.Context(), q.PageNumber, q.PageSize)
		if err != nil {
			loggerFor(c, log).Error("Database query for publications failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, result)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		dto, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			loggerFor(c, log).Error("Database query for publication failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.Header("ETag", formatETag(dto.Version))
		c.JSON(http.StatusOK, dto)
	})

	rg.POST("", func(c *gin.Context) {
		var in models.PublicationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		dto, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrConstraint):
				c.JSON(http.StatusBadRequest, gin.H{"error": constraintMessage})
			case errors.Is(err, services.ErrProjection):
				loggerFor(c, log).Error("Created publication could not be loaded", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load created publication"})
			default:
				loggerFor(c, log).Error("Failed to create publication", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create publication"})
			}
			return
		}

		PublicationWrites.WithLabelValues("created").Inc()
		c.Header("Location", fmt.Sprintf("/publications/%d", dto.PublicationID))
		c.Header("ETag", formatETag(dto.Version))
		c.JSON(http.StatusCreated, dto)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		expected, err := parseIfMatch(c.GetHeader("If-Match"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid If-Match header"})
			return
		}
		var in models.PublicationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := svc.Update(c.Request.Context(), id, in, expected); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.Status(http.StatusNotFound)
			case errors.Is(err, services.ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "publication was modified by another request"})
			case errors.Is(err, services.ErrConstraint):
				c.JSON(http.StatusBadRequest, gin.H{"error": constraintMessage})
			default:
				loggerFor(c, log).Error("Failed to update publication", zap.Uint("id", id), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update publication"})
			}
			return
		}

		PublicationWrites.WithLabelValues("updated").Inc()
		c.Status(http.StatusNoContent)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			loggerFor(c, log).Error("Failed to delete publication", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete publication"})
			return
		}

		PublicationWrites.WithLabelValues("deleted").Inc()
		c.Status(http.StatusNoContent)
	})
}

// parseID liest den Pfadparameter. Nicht-numerische IDs können keine
// Publikation treffen und werden als 404 beantwortet.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

func formatETag(version uint) string {
	return strconv.Quote(strconv.FormatUint(uint64(version), 10))
}

// parseIfMatch liefert 0, wenn keine Version vorgegeben ist.
func parseIfMatch(header string) (uint, error) {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return 0, nil
	}
	header = strings.TrimPrefix(header, "W/")
	v, err := strconv.ParseUint(strings.Trim(header, `"`), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid version %q", header)
	}
	return uint(v), nil
}
