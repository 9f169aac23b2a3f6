// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shelfwatch/backend-go/internal/api/handlers"
	"github.com/shelfwatch/backend-go/internal/api/middleware"
	"github.com/shelfwatch/backend-go/internal/service"
)

type Services struct {
	ReorderService *service.ReorderService
	QualityService *service.QualityService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ReorderService != nil {
			reorderHandler := handlers.NewReorderHandler(services.ReorderService)
			reorderGroup := apiGroup.Group("/reorder")
			{
				reorderGroup.GET("/suggestions", reorderHandler.GetSuggestions)
				reorderGroup.GET("/at_risk", reorderHandler.GetAtRisk)
				reorderGroup.POST("/export", reorderHandler.Export)
				reorderGroup.POST("/invalidate", reorderHandler.Invalidate)
			}
		}

		if services.QualityService != nil {
			qualityHandler := handlers.NewQualityHandler(services.QualityService)
			apiGroup.GET("/quality/gate", qualityHandler.GetGate)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
