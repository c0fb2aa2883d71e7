package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
)

// RegisterRoutes registers podcast routes
// Rate limiting is applied at the route registration level
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, GetPodcasts(deps))

	// GET /api/podcasts
	router.GET("/podcasts", handlers...)
}
