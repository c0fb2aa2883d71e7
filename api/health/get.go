package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
)

// Get handles liveness requests
// @Summary      Liveness check
// @Description  Reports that the gateway process is up. Does not contact the upstream catalog.
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /healt [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{Message: "API gateway is running"})
	}
}

// Ready handles readiness requests, checking the rate limit store backend
// @Summary      Readiness check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /readyz [get]
func Ready(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := gin.H{"status": types.StatusOK}

		if deps == nil || deps.Limiter == nil {
			response["rateLimitStore"] = gin.H{"status": "not configured"}
			c.JSON(status, response)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := deps.Limiter.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			response["status"] = types.StatusError
			response["rateLimitStore"] = gin.H{"status": "unhealthy", "error": err.Error()}
		} else {
			response["rateLimitStore"] = gin.H{"status": "healthy"}
		}

		c.JSON(status, response)
	}
}
